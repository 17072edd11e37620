package wire

import (
	"encoding/binary"
)

// Encoder is the write cursor: an append-only byte buffer with no knowledge
// of message semantics. Writes grow the buffer as needed and never fail.
type Encoder struct {
	buf []byte
}

// NewEncoder creates a new wire format encoder.
func NewEncoder() *Encoder {
	return &Encoder{
		buf: make([]byte, 0),
	}
}

// NewEncoderSize creates an encoder whose buffer is pre-sized to hold n
// bytes. Callers that know the serialized size up front avoid regrowth.
func NewEncoderSize(n int) *Encoder {
	return &Encoder{
		buf: make([]byte, 0, n),
	}
}

// Bytes returns the encoded bytes.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset clears the encoder buffer, keeping its storage.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}

// Write appends raw bytes at the write position.
func (e *Encoder) Write(p []byte) {
	e.buf = append(e.buf, p...)
}

// WriteU8 appends a single byte.
func (e *Encoder) WriteU8(b byte) {
	e.buf = append(e.buf, b)
}

// WriteFixed32 appends a 32-bit value in little-endian order.
func (e *Encoder) WriteFixed32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

// WriteFixed64 appends a 64-bit value in little-endian order.
func (e *Encoder) WriteFixed64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}
