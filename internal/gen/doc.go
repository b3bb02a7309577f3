// Package gen renders C++ declaration headers from a loaded schema
// model.
//
// Generation is a pure transform: identical models and configuration
// produce byte-identical output, with no I/O or global state. One
// header is rendered per namespace, containing in order its constants,
// types (dependency-sorted), manifest keys, functions, and events.
//
// Emitted surfaces per struct follow the type's origins:
//   - from_json: Populate, Clone, FromValue factories
//   - from_client: ToValue serialization
//   - from_manifest_keys: key constants and ParseFromDictionary
package gen
