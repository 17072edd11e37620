package wire

// Map fields travel as repeated occurrences of a synthetic two-field entry
// message: key is field 1, value is field 2. On the wire they are
// indistinguishable from a repeated message field; these helpers give
// generated code the entry framing so each key/value codec stays a plain
// closure over the cursor.

// EncodeMapEntry appends one map entry as a length-delimited record.
// keySize/valueSize must report the full size of what keyEnc/valueEnc
// write, their field tags included; the entry length is computed before the
// body is written.
func (e *Encoder) EncodeMapEntry(fieldNumber FieldNumber, keySize, valueSize int, keyEnc, valueEnc func(*Encoder)) {
	e.EncodeTag(fieldNumber, WireBytes)
	e.EncodeVarint(uint64(keySize + valueSize))
	keyEnc(e)
	valueEnc(e)
}

// DecodeMapEntry reads one length-delimited entry record and dispatches its
// key and value fields to the given decoders. Entry fields other than 1 and
// 2 are structurally skipped. Missing key or value fields are legal: the
// caller keeps the respective zero value, matching reference behavior.
func (d *Decoder) DecodeMapEntry(key, value func(*Decoder, WireType) error) error {
	body, err := d.DecodeRawBytes()
	if err != nil {
		return err
	}
	sub := NewDecoder(body)
	for !sub.Empty() {
		num, wt, err := sub.DecodeTag()
		if err != nil {
			return err
		}
		switch num {
		case 1:
			err = key(sub, wt)
		case 2:
			err = value(sub, wt)
		default:
			err = sub.SkipValue(num, wt)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// MapEntrySize returns the full wire size of one entry, tag and length
// prefix included, given the sizes of its framed key and value fields.
func MapEntrySize(fieldNumber FieldNumber, keySize, valueSize int) int {
	n := keySize + valueSize
	return TagSize(fieldNumber) + VarintSize(uint64(n)) + n
}
