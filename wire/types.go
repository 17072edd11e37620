package wire

// ===== PROTOBUF WIRE FORMAT TYPES =====

// WireType identifies how a field's raw bytes are framed on the wire.
type WireType int32

const (
	WireVarint     WireType = 0 // int32, int64, uint32, uint64, sint32, sint64, bool, enum
	WireFixed64    WireType = 1 // fixed64, sfixed64, double
	WireBytes      WireType = 2 // string, bytes, embedded messages, packed repeated fields
	WireStartGroup WireType = 3 // legacy groups; accepted on decode, never emitted
	WireEndGroup   WireType = 4 // legacy groups; accepted on decode, never emitted
	WireFixed32    WireType = 5 // fixed32, sfixed32, float
)

// Valid reports whether wt is a wire type this codec can frame.
func (wt WireType) Valid() bool {
	switch wt {
	case WireVarint, WireFixed64, WireBytes, WireStartGroup, WireEndGroup, WireFixed32:
		return true
	}
	return false
}

// FieldNumber represents a protobuf field number.
type FieldNumber int32

const (
	// MinFieldNumber and MaxFieldNumber bound the legal field number range.
	MinFieldNumber FieldNumber = 1
	MaxFieldNumber FieldNumber = 1<<29 - 1

	// FirstReservedNumber..LastReservedNumber is reserved by the protobuf
	// implementation itself and may not be used by any schema.
	FirstReservedNumber FieldNumber = 19000
	LastReservedNumber  FieldNumber = 19999
)

// Valid reports whether n is inside the legal field number range. The
// implementation-reserved range is a schema-build concern, not a wire
// concern: tags carrying those numbers still decode (as unknown fields).
func (n FieldNumber) Valid() bool {
	return n >= MinFieldNumber && n <= MaxFieldNumber
}

// Tag represents a protobuf field tag (field number + wire type).
type Tag uint64

// MakeTag creates a tag from field number and wire type.
func MakeTag(fieldNumber FieldNumber, wireType WireType) Tag {
	return Tag(uint64(fieldNumber)<<3 | uint64(wireType))
}

// ParseTag splits a tag into field number and wire type.
func ParseTag(tag Tag) (FieldNumber, WireType) {
	return FieldNumber(tag >> 3), WireType(tag & 0x7)
}
