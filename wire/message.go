package wire

// Message is the behavioral contract every generated type implements. The
// codec drives it recursively for nested messages.
//
// Size is a pure function over the value: it sums tag, framing, and value
// bytes for every set or non-default field plus the unknown field set, and
// has no side effects. MarshalTo runs after Size so length prefixes are
// known before the body is written; writers stay forward-only with no
// back-patching. Unmarshal starts from the type's default value and applies
// decoded fields until its input is exhausted.
type Message interface {
	Size() int
	MarshalTo(e *Encoder)
	Unmarshal(d *Decoder) error
}

// Marshal serializes m into a freshly allocated buffer. Encoding never
// fails for a well-formed value: there is no I/O, only buffer growth.
func Marshal(m Message) []byte {
	e := NewEncoderSize(m.Size())
	m.MarshalTo(e)
	return e.Bytes()
}

// Unmarshal decodes data into m, which should be a default-valued instance.
// A generated Unmarshal loops until its decoder is exhausted, so leftover
// bytes only occur when it bails out early on malformed framing.
func Unmarshal(data []byte, m Message) error {
	d := NewDecoder(data)
	if err := m.Unmarshal(d); err != nil {
		return err
	}
	if !d.Empty() {
		return ErrTrailingData
	}
	return nil
}

// UnmarshalNested decodes one length-delimited record from d into m. The
// record's body must be fully consumed by m.
func UnmarshalNested(d *Decoder, m Message) error {
	return d.DecodeMessage(m)
}

// ===== ENCODER METHODS =====

// EncodeMessage appends a nested message as a length-delimited field. The
// length is computed first via the contract's Size, then the body is
// written; the two must agree by construction.
func (e *Encoder) EncodeMessage(fieldNumber FieldNumber, m Message) {
	e.EncodeTag(fieldNumber, WireBytes)
	e.EncodeVarint(uint64(m.Size()))
	m.MarshalTo(e)
}

// ===== DECODER METHODS =====

// DecodeMessage reads one length-delimited record and decodes it into m.
// The nested decoder must consume its sub-slice fully; trailing bytes are
// ErrTrailingData.
func (d *Decoder) DecodeMessage(m Message) error {
	body, err := d.DecodeRawBytes()
	if err != nil {
		return err
	}
	sub := NewDecoder(body)
	if err := m.Unmarshal(sub); err != nil {
		return err
	}
	if !sub.Empty() {
		return ErrTrailingData
	}
	return nil
}

// DecodePacked reads one length-delimited record and calls elem for each
// back-to-back element until the declared length is exhausted. A partial
// trailing element surfaces as the element decoder's own error, typically
// ErrTruncated.
func (d *Decoder) DecodePacked(elem func(*Decoder) error) error {
	body, err := d.DecodeRawBytes()
	if err != nil {
		return err
	}
	sub := NewDecoder(body)
	for !sub.Empty() {
		if err := elem(sub); err != nil {
			return err
		}
	}
	return nil
}

// ===== UTILITY FUNCTIONS =====

// MessageSize returns the full wire size of m as a length-delimited field,
// tag included.
func MessageSize(fieldNumber FieldNumber, m Message) int {
	n := m.Size()
	return TagSize(fieldNumber) + VarintSize(uint64(n)) + n
}
