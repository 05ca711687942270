// Package types defines the wire-safe time values of pbtime:
// Timestamp and Duration, laid out like the protobuf well-known types.
//
// These are plain Go structs with cramberry struct tags for
// deterministic binary serialization. They convert to and from the
// time package, encode to the protobuf JSON text forms, and compare
// structurally. Transport concerns are handled in the transport packages.
package types
