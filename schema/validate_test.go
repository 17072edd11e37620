package schema

import (
	"strings"
	"testing"
)

func scalarField(name string, number int32) *Field {
	return &Field{
		Name:       name,
		Number:     number,
		Label:      LabelSingular,
		Type:       FieldType{Kind: KindPrimitive, PrimitiveType: TypeInt32},
		OneofIndex: -1,
	}
}

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name    string
		msg     *Message
		wantErr string
	}{
		{
			name: "valid",
			msg: &Message{
				Name:   "Ok",
				Fields: []*Field{scalarField("a", 1), scalarField("b", 536870911)},
			},
		},
		{
			name:    "number zero",
			msg:     &Message{Name: "M", Fields: []*Field{scalarField("a", 0)}},
			wantErr: "out of range",
		},
		{
			name:    "number too large",
			msg:     &Message{Name: "M", Fields: []*Field{scalarField("a", 536870912)}},
			wantErr: "out of range",
		},
		{
			name:    "implementation reserved",
			msg:     &Message{Name: "M", Fields: []*Field{scalarField("a", 19500)}},
			wantErr: "implementation-reserved",
		},
		{
			name: "declared reserved",
			msg: &Message{
				Name:           "M",
				Fields:         []*Field{scalarField("a", 5)},
				ReservedRanges: []*ReservedRange{{Start: 4, End: 6}},
			},
			wantErr: "reserved number 5",
		},
		{
			name:    "duplicate number",
			msg:     &Message{Name: "M", Fields: []*Field{scalarField("a", 3), scalarField("b", 3)}},
			wantErr: "duplicate field number 3",
		},
		{
			name: "duplicate number across oneof",
			msg: &Message{
				Name:   "M",
				Fields: []*Field{scalarField("a", 3)},
				OneofGroups: []*Oneof{
					{Name: "choice", Fields: []*Field{scalarField("b", 3)}},
				},
			},
			wantErr: "duplicate field number 3",
		},
		{
			name: "duplicate oneof name",
			msg: &Message{
				Name: "M",
				OneofGroups: []*Oneof{
					{Name: "choice"},
					{Name: "choice"},
				},
			},
			wantErr: "duplicate oneof name",
		},
		{
			name: "duplicate case name",
			msg: &Message{
				Name: "M",
				OneofGroups: []*Oneof{
					{Name: "choice", Fields: []*Field{scalarField("x", 1), scalarField("x", 2)}},
				},
			},
			wantErr: "duplicate oneof case",
		},
		{
			name: "nested violation surfaces",
			msg: &Message{
				Name: "Outer",
				NestedTypes: []*Message{
					{Name: "Inner", Fields: []*Field{scalarField("a", 0)}},
				},
			},
			wantErr: "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessage(tt.msg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateMessage: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEnum(t *testing.T) {
	ok := &Enum{Name: "E", Values: []*EnumValue{{Name: "A", Number: 0}, {Name: "B", Number: 1}}}
	if err := ValidateEnum(ok); err != nil {
		t.Fatalf("ValidateEnum: %v", err)
	}

	dupName := &Enum{Name: "E", Values: []*EnumValue{{Name: "A", Number: 0}, {Name: "A", Number: 1}}}
	if err := ValidateEnum(dupName); err == nil {
		t.Error("duplicate value name accepted")
	}

	dupNumber := &Enum{Name: "E", Values: []*EnumValue{{Name: "A", Number: 1}, {Name: "B", Number: 1}}}
	if err := ValidateEnum(dupNumber); err == nil {
		t.Error("duplicate value number accepted without allow_alias")
	}

	aliased := &Enum{
		Name:       "E",
		AllowAlias: true,
		Values:     []*EnumValue{{Name: "A", Number: 1}, {Name: "B", Number: 1}},
	}
	if err := ValidateEnum(aliased); err != nil {
		t.Errorf("allow_alias rejected: %v", err)
	}
}

func TestReservedRangeContains(t *testing.T) {
	r := ReservedRange{Start: 10, End: 20}
	for _, n := range []int32{10, 15, 20} {
		if !r.Contains(n) {
			t.Errorf("Contains(%d) = false", n)
		}
	}
	for _, n := range []int32{9, 21} {
		if r.Contains(n) {
			t.Errorf("Contains(%d) = true", n)
		}
	}
}

func TestIsPackedType(t *testing.T) {
	packed := []PrimitiveType{TypeInt32, TypeInt64, TypeUint32, TypeUint64,
		TypeSint32, TypeSint64, TypeBool, TypeFixed32, TypeFixed64,
		TypeSfixed32, TypeSfixed64, TypeFloat, TypeDouble}
	for _, p := range packed {
		if !IsPackedType(p) {
			t.Errorf("IsPackedType(%s) = false", p)
		}
	}
	for _, p := range []PrimitiveType{TypeString, TypeBytes} {
		if IsPackedType(p) {
			t.Errorf("IsPackedType(%s) = true", p)
		}
	}
}
