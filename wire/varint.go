package wire

// maxVarintBytes is the longest legal encoding of a 64-bit varint.
const maxVarintBytes = 10

// ===== ENCODER METHODS =====

// EncodeVarint appends v as a minimal little-endian base-128 varint.
func (e *Encoder) EncodeVarint(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

// EncodeTag appends the tag for fieldNumber with the given wire type.
func (e *Encoder) EncodeTag(fieldNumber FieldNumber, wireType WireType) {
	e.EncodeVarint(uint64(MakeTag(fieldNumber, wireType)))
}

// EncodeInt32 appends an int32 as a varint. Negative values sign-extend to
// ten bytes, matching the reference format.
func (e *Encoder) EncodeInt32(v int32) {
	e.EncodeVarint(uint64(int64(v)))
}

// EncodeInt64 appends an int64 as a varint.
func (e *Encoder) EncodeInt64(v int64) {
	e.EncodeVarint(uint64(v))
}

// EncodeUint32 appends a uint32 as a varint.
func (e *Encoder) EncodeUint32(v uint32) {
	e.EncodeVarint(uint64(v))
}

// EncodeUint64 appends a uint64 as a varint.
func (e *Encoder) EncodeUint64(v uint64) {
	e.EncodeVarint(v)
}

// EncodeSint32 appends a zigzag-encoded int32.
func (e *Encoder) EncodeSint32(v int32) {
	e.EncodeVarint(EncodeZigZag32(v))
}

// EncodeSint64 appends a zigzag-encoded int64.
func (e *Encoder) EncodeSint64(v int64) {
	e.EncodeVarint(EncodeZigZag64(v))
}

// EncodeBool appends a bool as a varint.
func (e *Encoder) EncodeBool(v bool) {
	if v {
		e.EncodeVarint(1)
	} else {
		e.EncodeVarint(0)
	}
}

// EncodeEnum appends an enum number as a varint.
func (e *Encoder) EncodeEnum(v int32) {
	e.EncodeVarint(uint64(int64(v)))
}

// ===== DECODER METHODS =====

// DecodeVarint reads continuation-flagged bytes from the current position.
// It fails with ErrInvalidVarint when more than ten bytes are consumed
// without terminating, or ErrTruncated when the input runs out mid-sequence.
func (d *Decoder) DecodeVarint() (uint64, error) {
	var result uint64
	var shift uint

	for i := 0; i < maxVarintBytes; i++ {
		if d.pos >= len(d.buf) {
			return 0, ErrTruncated
		}

		b := d.buf[d.pos]
		d.pos++

		if shift < 64 {
			result |= uint64(b&0x7F) << shift
		}

		if (b & 0x80) == 0 {
			return result, nil
		}

		shift += 7
	}

	return 0, ErrInvalidVarint
}

// DecodeInt32 decodes a varint as int32. A wider value is truncated to the
// low-order 32 bits per standard wire compatibility rules.
func (d *Decoder) DecodeInt32() (int32, error) {
	v, err := d.DecodeVarint()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// DecodeInt64 decodes a varint as int64.
func (d *Decoder) DecodeInt64() (int64, error) {
	v, err := d.DecodeVarint()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// DecodeUint32 decodes a varint as uint32, truncating wider values.
func (d *Decoder) DecodeUint32() (uint32, error) {
	v, err := d.DecodeVarint()
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// DecodeUint64 decodes a varint as uint64.
func (d *Decoder) DecodeUint64() (uint64, error) {
	return d.DecodeVarint()
}

// DecodeSint32 decodes a zigzag-encoded signed varint as int32.
func (d *Decoder) DecodeSint32() (int32, error) {
	v, err := d.DecodeVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag32(v), nil
}

// DecodeSint64 decodes a zigzag-encoded signed varint as int64.
func (d *Decoder) DecodeSint64() (int64, error) {
	v, err := d.DecodeVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag64(v), nil
}

// DecodeBool decodes a varint as bool.
func (d *Decoder) DecodeBool() (bool, error) {
	v, err := d.DecodeVarint()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// DecodeEnum decodes a varint as an enum number. Unknown numbers are the
// caller's concern; open-enum semantics preserve them as-is.
func (d *Decoder) DecodeEnum() (int32, error) {
	v, err := d.DecodeVarint()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ===== UTILITY FUNCTIONS =====

// EncodeZigZag32 maps a signed 32-bit integer to an unsigned one so small
// magnitudes stay small.
func EncodeZigZag32(v int32) uint64 {
	return uint64((uint32(v) << 1) ^ uint32(v>>31))
}

// EncodeZigZag64 maps a signed 64-bit integer to an unsigned one.
func EncodeZigZag64(v int64) uint64 {
	return uint64(v<<1) ^ uint64(v>>63)
}

// DecodeZigZag32 is the exact inverse of EncodeZigZag32.
func DecodeZigZag32(encoded uint64) int32 {
	return int32((uint32(encoded) >> 1) ^ uint32(-int32(encoded&1)))
}

// DecodeZigZag64 is the exact inverse of EncodeZigZag64.
func DecodeZigZag64(encoded uint64) int64 {
	return int64((encoded >> 1) ^ uint64(-int64(encoded&1)))
}

// VarintSize returns the number of bytes needed to encode v as a varint.
func VarintSize(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// TagSize returns the encoded size of the tag for fieldNumber; wire type
// bits never push a tag across a varint length boundary.
func TagSize(fieldNumber FieldNumber) int {
	return VarintSize(uint64(fieldNumber) << 3)
}

// Int32Size returns the varint size of v with sign extension.
func Int32Size(v int32) int {
	return VarintSize(uint64(int64(v)))
}

// Int64Size returns the varint size of v.
func Int64Size(v int64) int {
	return VarintSize(uint64(v))
}

// Sint32Size returns the varint size of zigzag-encoded v.
func Sint32Size(v int32) int {
	return VarintSize(EncodeZigZag32(v))
}

// Sint64Size returns the varint size of zigzag-encoded v.
func Sint64Size(v int64) int {
	return VarintSize(EncodeZigZag64(v))
}
