// Package model defines the in-memory representation of parsed API
// namespaces: types, functions, events, and properties, kept in schema
// declaration order.
//
// The model is built once by the schema loader and treated as read-only
// by everything downstream. Generators derive names and orderings per
// run instead of mutating the model, so the same model can drive
// concurrent generations.
//
// Naming conventions:
//   - Type names and refs are fully qualified ("alarms.Alarm"); the
//     loader qualifies bare same-namespace refs while building.
//   - UnixName converts schema camelCase to the snake_case identifiers
//     used for declared members.
package model
