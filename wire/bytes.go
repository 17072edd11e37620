package wire

// ===== ENCODER METHODS =====

// EncodeBytes appends data as a length-delimited record.
func (e *Encoder) EncodeBytes(data []byte) {
	e.EncodeVarint(uint64(len(data)))
	e.buf = append(e.buf, data...)
}

// EncodeString appends s as a length-delimited record.
func (e *Encoder) EncodeString(s string) {
	e.EncodeVarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// ===== DECODER METHODS =====

// DecodeBytes reads a length-delimited record, copying the payload so the
// result does not alias the input buffer.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	raw, err := d.DecodeRawBytes()
	if err != nil {
		return nil, err
	}
	data := make([]byte, len(raw))
	copy(data, raw)
	return data, nil
}

// DecodeRawBytes reads a length-delimited record without copying. The
// returned slice shares the underlying buffer; nested message decoders use
// this to consume their exact sub-slice.
func (d *Decoder) DecodeRawBytes() ([]byte, error) {
	length, err := d.DecodeVarint()
	if err != nil {
		return nil, err
	}
	return d.ReadExact(int(length))
}

// DecodeString reads a length-delimited record as a string.
func (d *Decoder) DecodeString() (string, error) {
	raw, err := d.DecodeRawBytes()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// ===== UTILITY FUNCTIONS =====

// BytesSize returns the wire size of data as a length-delimited record.
func BytesSize(data []byte) int {
	return VarintSize(uint64(len(data))) + len(data)
}

// StringSize returns the wire size of s as a length-delimited record.
func StringSize(s string) int {
	return VarintSize(uint64(len(s))) + len(s)
}
