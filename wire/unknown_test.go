package wire

import (
	"bytes"
	"testing"
)

func TestUnknownFieldSetPreservesOrderAndDuplicates(t *testing.T) {
	var s UnknownFieldSet
	s.Add(5, WireVarint, []byte{0x01})
	s.Add(7, WireBytes, []byte("abc"))
	s.Add(5, WireVarint, []byte{0x02})

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	fields := s.Fields()
	if fields[0].Number != 5 || fields[1].Number != 7 || fields[2].Number != 5 {
		t.Errorf("encounter order not preserved: %+v", fields)
	}
	if !bytes.Equal(fields[2].Raw, []byte{0x02}) {
		t.Errorf("duplicate record raw = %x", fields[2].Raw)
	}
}

func TestUnknownFieldSetAddCopies(t *testing.T) {
	raw := []byte{0xaa}
	var s UnknownFieldSet
	s.Add(1, WireVarint, raw)
	raw[0] = 0x00
	if s.Fields()[0].Raw[0] != 0xaa {
		t.Error("Add did not copy the raw bytes")
	}
}

func TestUnknownFieldSetMarshalMatchesSize(t *testing.T) {
	var s UnknownFieldSet
	s.Add(5, WireVarint, []byte{0x80, 0x00}) // non-minimal, kept verbatim
	s.Add(6, WireFixed64, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	s.Add(7, WireBytes, []byte("payload"))
	s.Add(8, WireFixed32, []byte{9, 8, 7, 6})

	e := NewEncoder()
	s.MarshalTo(e)
	if e.Len() != s.Size() {
		t.Fatalf("emitted %d bytes, Size reported %d", e.Len(), s.Size())
	}

	// Everything reads back as the same records.
	d := NewDecoder(e.Bytes())
	var out UnknownFieldSet
	for !d.Empty() {
		num, wt, err := d.DecodeTag()
		if err != nil {
			t.Fatalf("DecodeTag: %v", err)
		}
		raw, err := d.ReadRawValue(num, wt)
		if err != nil {
			t.Fatalf("ReadRawValue: %v", err)
		}
		out.Add(num, wt, raw)
	}
	if !s.Equal(&out) {
		t.Errorf("round trip changed records:\n  in:  %+v\n  out: %+v", s.Fields(), out.Fields())
	}
}

func TestUnknownGroupReframed(t *testing.T) {
	// The stored raw bytes are the group body; emit must restore the
	// start/end framing around them.
	inner := NewEncoder()
	inner.EncodeTag(1, WireVarint)
	inner.EncodeVarint(9)

	var s UnknownFieldSet
	s.Add(4, WireStartGroup, inner.Bytes())

	e := NewEncoder()
	s.MarshalTo(e)
	if e.Len() != s.Size() {
		t.Fatalf("emitted %d bytes, Size reported %d", e.Len(), s.Size())
	}

	d := NewDecoder(e.Bytes())
	num, wt, err := d.DecodeTag()
	if err != nil || num != 4 || wt != WireStartGroup {
		t.Fatalf("DecodeTag = (%d, %d, %v), want (4, start group, nil)", num, wt, err)
	}
	body, err := d.ReadRawValue(num, wt)
	if err != nil {
		t.Fatalf("ReadRawValue: %v", err)
	}
	if !bytes.Equal(body, inner.Bytes()) {
		t.Errorf("group body = %x, want %x", body, inner.Bytes())
	}
	if !d.Empty() {
		t.Errorf("left %d bytes unread", d.Remaining())
	}
}

func TestUnknownFieldSetEqual(t *testing.T) {
	var a, b UnknownFieldSet
	a.Add(1, WireVarint, []byte{1})
	b.Add(1, WireVarint, []byte{1})
	if !a.Equal(&b) {
		t.Error("identical sets reported unequal")
	}
	b.Add(2, WireVarint, []byte{2})
	if a.Equal(&b) {
		t.Error("sets of different length reported equal")
	}

	var c UnknownFieldSet
	c.Add(1, WireFixed32, []byte{1})
	if a.Equal(&c) {
		t.Error("sets differing in wire type reported equal")
	}
}

func TestUnknownFieldSetEmpty(t *testing.T) {
	var s UnknownFieldSet
	if !s.Empty() || s.Size() != 0 {
		t.Errorf("zero set: Empty=%v Size=%d", s.Empty(), s.Size())
	}
	e := NewEncoder()
	s.MarshalTo(e)
	if e.Len() != 0 {
		t.Errorf("zero set emitted %d bytes", e.Len())
	}
}
