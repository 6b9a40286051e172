package protocol

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// marshaler is implemented by every message in this package.
type marshaler interface {
	appendTo(b []byte) []byte
}

// Marshal encodes a message into protobuf wire format.
func Marshal(m marshaler) []byte {
	return m.appendTo(nil)
}

// appendString appends a length-delimited string field. Empty strings are
// omitted, matching proto2 optional semantics.
func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendStrings appends a repeated string field.
func appendStrings(b []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

// appendVarint appends a varint field, omitting the zero value.
func appendVarint(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

// appendBool appends a bool field, omitting false.
func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

// appendFixed64 appends a fixed64 field, omitting the zero value.
func appendFixed64(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, v)
}

// appendMessage appends an embedded message field. Nil messages are omitted.
func appendMessage(b []byte, num protowire.Number, m marshaler) []byte {
	if m == nil {
		return b
	}
	sub := m.appendTo(nil)
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, sub)
}

// fieldError converts a negative protowire result into a DecodeError.
func fieldError(msg string, n int) error {
	return &DecodeError{Message: msg, Err: protowire.ParseError(n)}
}

// DecodeError reports that a server response could not be parsed as the
// expected wire shape.
type DecodeError struct {
	// Message names the message type being decoded.
	Message string

	// Err is the underlying wire-level error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Message, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// scanFields walks the top-level fields of a wire-encoded message and
// invokes fn for each one. fn receives the field number, wire type and the
// remaining data, and returns the number of bytes it consumed (a negative
// protowire count signals a wire error). Returning 0 skips the field
// generically, which is how unknown fields stay forward-compatible.
func scanFields(msg string, data []byte, fn func(num protowire.Number, typ protowire.Type, data []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fieldError(msg, n)
		}
		data = data[n:]

		consumed, err := fn(num, typ, data)
		if err != nil {
			return err
		}
		if consumed == 0 {
			consumed = protowire.ConsumeFieldValue(num, typ, data)
		}
		if consumed < 0 {
			return fieldError(msg, consumed)
		}
		data = data[consumed:]
	}
	return nil
}
