package wire

import (
	"encoding/binary"
)

// Decoder is the read cursor: a position over a fixed-size, possibly
// externally-owned byte slice. Every read fails with ErrTruncated when fewer
// than the required bytes remain.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new wire format decoder over data. The decoder does
// not copy data; the caller must not mutate it during decoding.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		buf: data,
		pos: 0,
	}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// Empty reports whether the cursor has consumed all input.
func (d *Decoder) Empty() bool {
	return d.pos >= len(d.buf)
}

// ReadU8 reads a single byte.
func (d *Decoder) ReadU8() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, ErrTruncated
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadExact returns the next n bytes without copying, advancing the cursor.
// The returned slice shares the underlying buffer.
func (d *Decoder) ReadExact(n int) ([]byte, error) {
	if n < 0 || d.pos+n > len(d.buf) {
		return nil, ErrTruncated
	}
	p := d.buf[d.pos : d.pos+n]
	d.pos += n
	return p, nil
}

// ReadFixed32 reads a 32-bit little-endian value.
func (d *Decoder) ReadFixed32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

// ReadFixed64 reads a 64-bit little-endian value.
func (d *Decoder) ReadFixed64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, ErrTruncated
	}
	v := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

// DecodeTag reads the next field tag, rejecting field numbers outside the
// legal range and wire types the format does not define.
func (d *Decoder) DecodeTag() (FieldNumber, WireType, error) {
	raw, err := d.DecodeVarint()
	if err != nil {
		return 0, 0, err
	}
	num, wt := ParseTag(Tag(raw))
	if !num.Valid() {
		return 0, 0, ErrInvalidFieldNumber
	}
	if !wt.Valid() {
		return 0, 0, ErrInvalidGroup
	}
	return num, wt, nil
}

// ReadRawValue consumes one field value of the given wire type and returns
// its raw bytes exactly as they appeared, without the tag. For WireBytes the
// length prefix is stripped; for WireStartGroup the returned bytes are the
// group body without its start/end framing. The result shares the
// underlying buffer.
func (d *Decoder) ReadRawValue(num FieldNumber, wt WireType) ([]byte, error) {
	switch wt {
	case WireVarint:
		start := d.pos
		if _, err := d.DecodeVarint(); err != nil {
			return nil, err
		}
		return d.buf[start:d.pos], nil
	case WireFixed64:
		return d.ReadExact(8)
	case WireBytes:
		length, err := d.DecodeVarint()
		if err != nil {
			return nil, err
		}
		return d.ReadExact(int(length))
	case WireFixed32:
		return d.ReadExact(4)
	case WireStartGroup:
		return d.readGroupBody(num)
	case WireEndGroup:
		return nil, ErrInvalidGroup
	default:
		return nil, ErrInvalidGroup
	}
}

// SkipValue structurally skips one field value of the given wire type.
func (d *Decoder) SkipValue(num FieldNumber, wt WireType) error {
	_, err := d.ReadRawValue(num, wt)
	return err
}

// readGroupBody consumes nested fields until the end-group tag matching num
// and returns everything in between.
func (d *Decoder) readGroupBody(num FieldNumber) ([]byte, error) {
	start := d.pos
	for {
		innerNum, innerWt, err := d.DecodeTag()
		if err != nil {
			return nil, err
		}
		if innerWt == WireEndGroup {
			if innerNum != num {
				return nil, ErrInvalidGroup
			}
			// Body excludes the end-group tag itself.
			end := d.pos - VarintSize(uint64(MakeTag(innerNum, WireEndGroup)))
			return d.buf[start:end], nil
		}
		if _, err := d.ReadRawValue(innerNum, innerWt); err != nil {
			return nil, err
		}
	}
}
