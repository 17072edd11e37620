package pbweave_test

import (
	"fmt"

	"github.com/pbweave/pbweave"
	"github.com/pbweave/pbweave/wire"
)

// Greeting is shaped like a pbweavec-generated type:
//
//	message Greeting {
//	  string text = 1;
//	  int32 count = 2;
//	}
type Greeting struct {
	Text  string
	Count int32

	unknownFields wire.UnknownFieldSet
}

func (m *Greeting) Size() int {
	n := 0
	if m.Text != "" {
		n += wire.TagSize(1) + wire.StringSize(m.Text)
	}
	if m.Count != 0 {
		n += wire.TagSize(2) + wire.Int32Size(m.Count)
	}
	n += m.unknownFields.Size()
	return n
}

func (m *Greeting) MarshalTo(e *wire.Encoder) {
	if m.Text != "" {
		e.EncodeTag(1, wire.WireBytes)
		e.EncodeString(m.Text)
	}
	if m.Count != 0 {
		e.EncodeTag(2, wire.WireVarint)
		e.EncodeInt32(m.Count)
	}
	m.unknownFields.MarshalTo(e)
}

func (m *Greeting) Unmarshal(d *wire.Decoder) error {
	for !d.Empty() {
		num, wt, err := d.DecodeTag()
		if err != nil {
			return err
		}
		switch num {
		case 1:
			m.Text, err = d.DecodeString()
		case 2:
			m.Count, err = d.DecodeInt32()
		default:
			var raw []byte
			raw, err = d.ReadRawValue(num, wt)
			if err == nil {
				m.unknownFields.Add(num, wt, raw)
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Example round-trips a message through the wire format.
func Example() {
	data := pbweave.Marshal(&Greeting{Text: "hello", Count: 3})
	fmt.Printf("encoded %d bytes\n", len(data))

	var out Greeting
	if err := pbweave.Unmarshal(data, &out); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("text=%q count=%d\n", out.Text, out.Count)
	// Output:
	// encoded 9 bytes
	// text="hello" count=3
}
