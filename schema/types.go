package schema

// The schema model is an in-memory graph of message, field, enum, and oneof
// descriptors produced by the schema front-end. It is immutable once built
// and is the single source of truth the generator and runtime consult.

// Repo represents a collection of .proto files and their definitions.
type Repo struct {
	Files map[string]*File `json:"files"`
}

// File represents a single .proto file.
type File struct {
	Name     string     `json:"name"`     // file.proto
	Package  string     `json:"package"`  // package name
	Syntax   string     `json:"syntax"`   // proto2 or proto3
	Imports  []*Import  `json:"imports"`  // imported files
	Messages []*Message `json:"messages"` // message definitions
	Enums    []*Enum    `json:"enums"`    // enum definitions
	Services []*Service `json:"services"` // service definitions
}

// Import represents an import statement.
type Import struct {
	Path   string `json:"path"`
	Public bool   `json:"public"`
	Weak   bool   `json:"weak"`
}

// Message represents a protobuf message definition. Field order follows the
// declaration order in the source schema; the generator emits in that order
// while decode accepts any order.
type Message struct {
	Name           string           `json:"name"`
	Fields         []*Field         `json:"fields"`
	NestedTypes    []*Message       `json:"nested_types"`
	NestedEnums    []*Enum          `json:"nested_enums"`
	OneofGroups    []*Oneof         `json:"oneof_groups"`
	ReservedRanges []*ReservedRange `json:"reserved_ranges"`
	MapEntry       bool             `json:"map_entry"` // synthetic map entry message
}

// ReservedRange is an inclusive range of field numbers the schema declares
// off-limits.
type ReservedRange struct {
	Start int32 `json:"start"`
	End   int32 `json:"end"`
}

// Contains reports whether n falls inside the range.
func (r *ReservedRange) Contains(n int32) bool {
	return n >= r.Start && n <= r.End
}

// Field represents a message field.
type Field struct {
	Name       string     `json:"name"`
	Number     int32      `json:"number"`
	Label      FieldLabel `json:"label"`
	Type       FieldType  `json:"type"`
	Packed     bool       `json:"packed"`      // repeated scalar packed on the wire
	OneofIndex int32      `json:"oneof_index"` // index into OneofGroups, -1 if none
}

// InOneof reports whether the field is a oneof member.
func (f *Field) InOneof() bool {
	return f.OneofIndex >= 0
}

// Oneof represents a named set of mutually exclusive fields. At most one
// member may be set on a message instance; decoding a later member
// overwrites an earlier one (last-one-wins on the wire).
type Oneof struct {
	Name   string   `json:"name"`
	Fields []*Field `json:"fields"`
}

// FieldLabel represents field labels.
type FieldLabel string

const (
	LabelSingular FieldLabel = "singular" // proto3 implicit presence
	LabelOptional FieldLabel = "optional" // explicit presence
	LabelRequired FieldLabel = "required" // proto2 required
	LabelRepeated FieldLabel = "repeated"
)

// FieldType represents field type information.
type FieldType struct {
	Kind          TypeKind      `json:"kind"`
	PrimitiveType PrimitiveType `json:"primitive_type,omitempty"`
	MessageType   string        `json:"message_type,omitempty"` // fully qualified once resolved
	EnumType      string        `json:"enum_type,omitempty"`
	MapKey        *FieldType    `json:"map_key,omitempty"`
	MapValue      *FieldType    `json:"map_value,omitempty"`
}

// TypeKind represents the kind of field type.
type TypeKind string

const (
	KindPrimitive TypeKind = "primitive"
	KindMessage   TypeKind = "message"
	KindEnum      TypeKind = "enum"
	KindMap       TypeKind = "map"
)

// PrimitiveType represents protobuf primitive types.
type PrimitiveType string

const (
	TypeDouble   PrimitiveType = "double"
	TypeFloat    PrimitiveType = "float"
	TypeInt64    PrimitiveType = "int64"
	TypeUint64   PrimitiveType = "uint64"
	TypeInt32    PrimitiveType = "int32"
	TypeFixed64  PrimitiveType = "fixed64"
	TypeFixed32  PrimitiveType = "fixed32"
	TypeBool     PrimitiveType = "bool"
	TypeString   PrimitiveType = "string"
	TypeBytes    PrimitiveType = "bytes"
	TypeUint32   PrimitiveType = "uint32"
	TypeSfixed32 PrimitiveType = "sfixed32"
	TypeSfixed64 PrimitiveType = "sfixed64"
	TypeSint32   PrimitiveType = "sint32"
	TypeSint64   PrimitiveType = "sint64"
)

var packedEligible = map[PrimitiveType]struct{}{
	TypeDouble:   {},
	TypeFloat:    {},
	TypeInt64:    {},
	TypeUint64:   {},
	TypeInt32:    {},
	TypeFixed64:  {},
	TypeFixed32:  {},
	TypeBool:     {},
	TypeUint32:   {},
	TypeSfixed32: {},
	TypeSfixed64: {},
	TypeSint32:   {},
	TypeSint64:   {},
}

// IsPackedType reports whether a repeated field of this primitive type may
// use the packed encoding. Strings, bytes, and messages never pack.
func IsPackedType(t PrimitiveType) bool {
	_, ok := packedEligible[t]
	return ok
}

// Enum represents an enum definition. Enums are open: integer values not in
// the known set are preserved on decode, never an error.
type Enum struct {
	Name       string       `json:"name"`
	Values     []*EnumValue `json:"values"`
	AllowAlias bool         `json:"allow_alias"`
}

// NameByNumber returns the symbolic name for a value number, or "" when the
// number is not in the known set.
func (e *Enum) NameByNumber(n int32) string {
	for _, v := range e.Values {
		if v.Number == n {
			return v.Name
		}
	}
	return ""
}

// EnumValue represents an enum value.
type EnumValue struct {
	Name   string `json:"name"`
	Number int32  `json:"number"`
}

// Service represents a service definition. Carried for completeness of the
// parsed graph; the generator ignores services.
type Service struct {
	Name    string    `json:"name"`
	Methods []*Method `json:"methods"`
}

// Method represents a service method.
type Method struct {
	Name            string `json:"name"`
	InputType       string `json:"input_type"`
	OutputType      string `json:"output_type"`
	ClientStreaming bool   `json:"client_streaming"`
	ServerStreaming bool   `json:"server_streaming"`
}
