// Package protocol implements the wire formats spoken by the store-catalog
// servers: the protobuf envelope carried by the fdfe and checkin endpoints,
// and the legacy newline-delimited key=value text returned by the auth
// endpoints.
//
// The protobuf messages are hand-written against the low-level
// encoding/protowire primitives so the package does not require a
// protoc/codegen toolchain. Field numbers are part of the protocol and are
// documented next to each struct field.
package protocol
