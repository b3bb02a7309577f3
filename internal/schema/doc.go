// Package schema loads API namespace definitions from schema files and
// builds the model the generator consumes.
//
// One file holds either a single namespace definition or a list of them.
// Files are parsed as YAML, which makes JSON schemas (the common case)
// parse unchanged; .json files may additionally carry // line comments,
// which are stripped outside string literals before parsing. Declaration
// order is preserved everywhere it matters: properties, enum values, and
// manifest keys reach the model in the order they were written.
//
// # Schema Overview
//
// A namespace definition has the following structure:
//
//	{
//	  "namespace": "alarms",
//	  "description": "Use the alarms API to schedule code to run.",
//	  "compiler_options": {"generate_error_messages": true},
//	  "types": [
//	    {
//	      "id": "Alarm",
//	      "type": "object",
//	      "properties": {
//	        "name": {"type": "string"},
//	        "periodInMinutes": {"type": "number", "optional": true}
//	      }
//	    }
//	  ],
//	  "properties": {
//	    "MAX_ALARMS": {"type": "integer", "value": 500}
//	  },
//	  "manifest_keys": {
//	    "device_name": {"type": "string"}
//	  },
//	  "functions": [
//	    {
//	      "name": "get",
//	      "parameters": [{"type": "string", "name": "name", "optional": true}],
//	      "returns_async": {
//	        "name": "callback",
//	        "parameters": [{"$ref": "Alarm", "name": "alarm", "optional": true}]
//	      }
//	    }
//	  ],
//	  "events": [
//	    {
//	      "name": "onAlarm",
//	      "parameters": [{"$ref": "Alarm", "name": "alarm"}]
//	    }
//	  ]
//	}
//
// # Type shapes
//
// Every type node is one of a closed set of shapes, decided in order:
//
//   - "$ref" references another type; unqualified refs resolve inside
//     the declaring namespace, dotted refs cross namespaces
//   - "enum" declares an enumeration; entries are plain strings or
//     {"name": ..., "description": ...} objects
//   - "choices" declares a tagged union of alternative shapes
//   - otherwise "type" picks one of: any, array, binary, boolean,
//     function, int64, integer, number, object, string
//
// Nodes marked "nocompile" are dropped wherever they appear.
//
// # Origins
//
// The loader stamps each type with where its values come from, which
// decides the conversion surfaces the generator declares on it:
// top-level types are both parsed and serialized (from_json +
// from_client), function parameters are parsed (from_json), async
// results and event parameters are serialized (from_client), and
// manifest key types parse from the manifest dictionary
// (from_manifest_keys), an origin that follows same-namespace refs.
//
// # Validation
//
// Validate walks a built model and accumulates findings into
// diagnostic.Diagnostics: unresolved same-namespace refs (with "did you
// mean" suggestions), duplicate type ids, properties whose unix names
// collide, empty or duplicate enum values, and a manifest_keys block
// that is not an object. Unknown compiler options warn during loading.
// Any error finding aborts generation; warnings do not.
package schema
