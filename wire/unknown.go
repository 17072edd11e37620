package wire

import (
	"bytes"
)

// UnknownField is one raw wire record for a field number the active schema
// does not know. Raw holds the value bytes exactly as encountered: the
// varint bytes themselves (even if non-minimal), the 4 or 8 fixed bytes,
// a length-delimited payload without its length prefix, or a group body
// without its start/end framing.
type UnknownField struct {
	Number   FieldNumber
	WireType WireType
	Raw      []byte
}

// UnknownFieldSet preserves wire data for field numbers absent from the
// current schema so decode -> mutate -> encode round-trips do not drop it.
// Records keep their original encounter order, duplicates included.
type UnknownFieldSet struct {
	fields []UnknownField
}

// Add appends a record. The raw bytes are copied so the set outlives the
// decode buffer.
func (s *UnknownFieldSet) Add(num FieldNumber, wt WireType, raw []byte) {
	data := make([]byte, len(raw))
	copy(data, raw)
	s.fields = append(s.fields, UnknownField{Number: num, WireType: wt, Raw: data})
}

// Len returns the number of preserved records.
func (s *UnknownFieldSet) Len() int {
	return len(s.fields)
}

// Empty reports whether the set holds no records.
func (s *UnknownFieldSet) Empty() bool {
	return len(s.fields) == 0
}

// Fields returns the preserved records in encounter order.
func (s *UnknownFieldSet) Fields() []UnknownField {
	return s.fields
}

// Size returns the wire size of re-emitting every record.
func (s *UnknownFieldSet) Size() int {
	var n int
	for _, f := range s.fields {
		n += TagSize(f.Number)
		switch f.WireType {
		case WireBytes:
			n += VarintSize(uint64(len(f.Raw))) + len(f.Raw)
		case WireStartGroup:
			n += len(f.Raw) + TagSize(f.Number)
		default:
			n += len(f.Raw)
		}
	}
	return n
}

// MarshalTo re-emits every record verbatim, each as its own tag plus
// payload, in encounter order.
func (s *UnknownFieldSet) MarshalTo(e *Encoder) {
	for _, f := range s.fields {
		e.EncodeTag(f.Number, f.WireType)
		switch f.WireType {
		case WireBytes:
			e.EncodeBytes(f.Raw)
		case WireStartGroup:
			e.Write(f.Raw)
			e.EncodeTag(f.Number, WireEndGroup)
		default:
			e.Write(f.Raw)
		}
	}
}

// Equal reports whether two sets hold identical records in the same order.
func (s *UnknownFieldSet) Equal(other *UnknownFieldSet) bool {
	if len(s.fields) != len(other.fields) {
		return false
	}
	for i, f := range s.fields {
		o := other.fields[i]
		if f.Number != o.Number || f.WireType != o.WireType || !bytes.Equal(f.Raw, o.Raw) {
			return false
		}
	}
	return true
}
