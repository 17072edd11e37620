package gen

import (
	"strings"
	"testing"

	"github.com/pbweave/pbweave/schema"
)

func primitive(p schema.PrimitiveType) schema.FieldType {
	return schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: p}
}

// resolvedTestFile models a file the registry has already resolved: named
// types fully qualified, packedness settled.
func resolvedTestFile() *schema.File {
	return &schema.File{
		Name:    "shop.proto",
		Package: "shop.v1",
		Syntax:  "proto3",
		Enums: []*schema.Enum{
			{
				Name: "Status",
				Values: []*schema.EnumValue{
					{Name: "STATUS_UNKNOWN", Number: 0},
					{Name: "STATUS_ACTIVE", Number: 1},
				},
			},
		},
		Messages: []*schema.Message{
			{
				Name: "Order",
				Fields: []*schema.Field{
					{Name: "id", Number: 1, Label: schema.LabelSingular, Type: primitive(schema.TypeString), OneofIndex: -1},
					{Name: "status", Number: 2, Label: schema.LabelSingular, Type: schema.FieldType{Kind: schema.KindEnum, EnumType: "shop.v1.Status"}, OneofIndex: -1},
					{Name: "quantities", Number: 3, Label: schema.LabelRepeated, Packed: true, Type: primitive(schema.TypeInt32), OneofIndex: -1},
					{Name: "items", Number: 4, Label: schema.LabelRepeated, Type: schema.FieldType{Kind: schema.KindMessage, MessageType: "shop.v1.Order.Item"}, OneofIndex: -1},
					{
						Name: "attrs", Number: 5, Label: schema.LabelSingular, OneofIndex: -1,
						Type: schema.FieldType{
							Kind:     schema.KindMap,
							MapKey:   &schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: schema.TypeString},
							MapValue: &schema.FieldType{Kind: schema.KindPrimitive, PrimitiveType: schema.TypeInt64},
						},
					},
				},
				OneofGroups: []*schema.Oneof{
					{
						Name: "payment",
						Fields: []*schema.Field{
							{Name: "card_token", Number: 6, Label: schema.LabelSingular, Type: primitive(schema.TypeString), OneofIndex: 0},
							{Name: "account_id", Number: 7, Label: schema.LabelSingular, Type: primitive(schema.TypeUint64), OneofIndex: 0},
						},
					},
				},
				NestedTypes: []*schema.Message{
					{
						Name: "Item",
						Fields: []*schema.Field{
							{Name: "sku", Number: 1, Label: schema.LabelSingular, Type: primitive(schema.TypeString), OneofIndex: -1},
						},
					},
				},
			},
		},
	}
}

func generateTestFile(t *testing.T) string {
	t.Helper()
	g := &fileGen{goPackage: "shoppb"}
	return string(g.generate(resolvedTestFile()))
}

func TestGenerateHeaderAndImports(t *testing.T) {
	src := generateTestFile(t)
	if !strings.HasPrefix(src, "// Code generated by pbweavec. DO NOT EDIT.") {
		t.Error("missing generated-code header")
	}
	for _, want := range []string{
		"package shoppb",
		`"strconv"`,
		`"github.com/pbweave/pbweave/wire"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateEnum(t *testing.T) {
	src := generateTestFile(t)
	for _, want := range []string{
		"type Status int32",
		"Status_STATUS_UNKNOWN Status = 0",
		"Status_STATUS_ACTIVE Status = 1",
		"var statusNames = map[int32]string{",
		"func (x Status) String() string {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateStructShapes(t *testing.T) {
	src := generateTestFile(t)
	for _, want := range []string{
		"type Order struct {",
		"Id string",
		"Status Status",
		"Quantities []int32",
		"Items []*Order_Item",
		"Attrs map[string]int64",
		"Payment isOrder_Payment",
		"unknownFields wire.UnknownFieldSet",
		"type Order_Item struct {",
		"type isOrder_Payment interface {",
		"type Order_CardToken struct {",
		"func (*Order_CardToken) isOrder_Payment() {}",
		"type Order_AccountId struct {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// Nested types are emitted before their parent.
	if strings.Index(src, "type Order_Item struct {") > strings.Index(src, "type Order struct {") {
		t.Error("nested type emitted after parent")
	}
}

func TestGenerateMethodBodies(t *testing.T) {
	src := generateTestFile(t)
	for _, want := range []string{
		"func (m *Order) Size() int {",
		"func (m *Order) MarshalTo(e *wire.Encoder) {",
		"func (m *Order) Unmarshal(d *wire.Decoder) error {",
		// packed repeated: one length pre-pass, one payload pass
		"e.EncodeTag(3, wire.WireBytes)",
		"e.EncodeVarint(uint64(l))",
		// enum field encodes through an int32 cast
		"e.EncodeEnum(int32(m.Status))",
		// map entry framing
		"e.EncodeMapEntry(5, wire.TagSize(1)+wire.StringSize(k), wire.TagSize(2)+wire.Int64Size(v),",
		// unknown fields preserved in the default case
		"m.unknownFields.Add(num, wt, raw)",
		// oneof decode boxes the wrapper
		"m.Payment = &Order_CardToken{CardToken: v}",
		// decode errors carry the field name
		`return wire.WrapField(err, "quantities")`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateProto2Presence(t *testing.T) {
	file := &schema.File{
		Name:    "legacy.proto",
		Package: "legacy",
		Syntax:  "proto2",
		Messages: []*schema.Message{
			{
				Name: "Old",
				Fields: []*schema.Field{
					{Name: "id", Number: 1, Label: schema.LabelRequired, Type: primitive(schema.TypeString), OneofIndex: -1},
					{Name: "score", Number: 2, Label: schema.LabelOptional, Type: primitive(schema.TypeInt32), OneofIndex: -1},
					{Name: "blob", Number: 3, Label: schema.LabelOptional, Type: primitive(schema.TypeBytes), OneofIndex: -1},
				},
			},
		},
	}
	g := &fileGen{goPackage: "legacypb"}
	src := string(g.generate(file))

	for _, want := range []string{
		"Id *string",
		"Score *int32",
		"Blob []byte", // bytes presence rides on nil, no extra pointer
		`return &wire.MissingRequiredFieldError{Field: "id"}`,
		"if m.Id != nil {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateNoEnumNoStrconv(t *testing.T) {
	file := &schema.File{
		Name:    "plain.proto",
		Package: "plain",
		Syntax:  "proto3",
		Messages: []*schema.Message{
			{
				Name: "P",
				Fields: []*schema.Field{
					{Name: "x", Number: 1, Label: schema.LabelSingular, Type: primitive(schema.TypeInt32), OneofIndex: -1},
				},
			},
		},
	}
	g := &fileGen{goPackage: "plainpb"}
	src := string(g.generate(file))
	if strings.Contains(src, "strconv") {
		t.Error("strconv imported without enums")
	}
}
