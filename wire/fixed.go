package wire

import (
	"math"
)

// ===== ENCODER METHODS =====

// EncodeFixed32 appends a 32-bit fixed-width value.
func (e *Encoder) EncodeFixed32(v uint32) {
	e.WriteFixed32(v)
}

// EncodeFixed64 appends a 64-bit fixed-width value.
func (e *Encoder) EncodeFixed64(v uint64) {
	e.WriteFixed64(v)
}

// EncodeSfixed32 appends a signed 32-bit fixed-width value.
func (e *Encoder) EncodeSfixed32(v int32) {
	e.WriteFixed32(uint32(v))
}

// EncodeSfixed64 appends a signed 64-bit fixed-width value.
func (e *Encoder) EncodeSfixed64(v int64) {
	e.WriteFixed64(uint64(v))
}

// EncodeFloat appends a 32-bit float as fixed32.
func (e *Encoder) EncodeFloat(v float32) {
	e.WriteFixed32(math.Float32bits(v))
}

// EncodeDouble appends a 64-bit float as fixed64.
func (e *Encoder) EncodeDouble(v float64) {
	e.WriteFixed64(math.Float64bits(v))
}

// ===== DECODER METHODS =====

// DecodeFixed32 reads a 32-bit fixed-width value.
func (d *Decoder) DecodeFixed32() (uint32, error) {
	return d.ReadFixed32()
}

// DecodeFixed64 reads a 64-bit fixed-width value.
func (d *Decoder) DecodeFixed64() (uint64, error) {
	return d.ReadFixed64()
}

// DecodeSfixed32 reads a signed 32-bit fixed-width value.
func (d *Decoder) DecodeSfixed32() (int32, error) {
	v, err := d.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// DecodeSfixed64 reads a signed 64-bit fixed-width value.
func (d *Decoder) DecodeSfixed64() (int64, error) {
	v, err := d.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// DecodeFloat reads a 32-bit float from fixed32 data.
func (d *Decoder) DecodeFloat() (float32, error) {
	v, err := d.ReadFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// DecodeDouble reads a 64-bit float from fixed64 data.
func (d *Decoder) DecodeDouble() (float64, error) {
	v, err := d.ReadFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ===== UTILITY FUNCTIONS =====

// Fixed32Size is the wire size of any fixed32 value.
const Fixed32Size = 4

// Fixed64Size is the wire size of any fixed64 value.
const Fixed64Size = 8
