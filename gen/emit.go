package gen

import (
	"fmt"

	"github.com/pbweave/pbweave/schema"
)

// fileGen emits one Go source file for one proto file. Messages and enums
// are flattened protoc-gen-go style: a nested type Parent.Child becomes
// Parent_Child. Every emitted message implements the wire.Message contract
// purely in terms of wire codec calls, fields in declaration order.
type fileGen struct {
	p         printer
	pkg       string // proto package of the file being generated
	goPackage string
}

func (g *fileGen) generate(file *schema.File) []byte {
	g.pkg = file.Package

	g.p.P("// Code generated by pbweavec. DO NOT EDIT.")
	g.p.P("// source: %s", file.Name)
	g.p.P("")
	g.p.P("package %s", g.goPackage)
	g.p.P("")
	g.p.P("import (")
	g.p.In()
	if hasEnums(file) {
		g.p.P("\"strconv\"")
		g.p.P("")
	}
	g.p.P("\"github.com/pbweave/pbweave/wire\"")
	g.p.Out()
	g.p.P(")")

	for _, e := range file.Enums {
		g.genEnum(e, "")
	}
	for _, m := range file.Messages {
		g.genMessage(m, "")
	}
	return g.p.Bytes()
}

func hasEnums(file *schema.File) bool {
	if len(file.Enums) > 0 {
		return true
	}
	var walk func(m *schema.Message) bool
	walk = func(m *schema.Message) bool {
		if len(m.NestedEnums) > 0 {
			return true
		}
		for _, nested := range m.NestedTypes {
			if walk(nested) {
				return true
			}
		}
		return false
	}
	for _, m := range file.Messages {
		if walk(m) {
			return true
		}
	}
	return false
}

// ===== ENUMS =====

func (g *fileGen) genEnum(e *schema.Enum, prefix string) {
	name := prefix + ToPascalCase(e.Name)

	g.p.P("")
	g.p.P("// %s is an open enum: numbers outside the known set are", name)
	g.p.P("// preserved as-is through decode and re-encode.")
	g.p.P("type %s int32", name)
	g.p.P("")
	g.p.P("const (")
	g.p.In()
	for _, v := range e.Values {
		g.p.P("%s_%s %s = %d", name, v.Name, name, v.Number)
	}
	g.p.Out()
	g.p.P(")")
	g.p.P("")
	g.p.P("var %sNames = map[int32]string{", ToCamelCase(name))
	g.p.In()
	for _, v := range e.Values {
		if e.AllowAlias && g.aliased(e, v) {
			continue
		}
		g.p.P("%d: %q,", v.Number, v.Name)
	}
	g.p.Out()
	g.p.P("}")
	g.p.P("")
	g.p.P("func (x %s) String() string {", name)
	g.p.In()
	g.p.P("if s, ok := %sNames[int32(x)]; ok {", ToCamelCase(name))
	g.p.In()
	g.p.P("return s")
	g.p.Out()
	g.p.P("}")
	g.p.P("return \"%s(\" + strconv.Itoa(int(x)) + \")\"", name)
	g.p.Out()
	g.p.P("}")
}

// aliased reports whether an earlier value already claimed v's number.
func (g *fileGen) aliased(e *schema.Enum, v *schema.EnumValue) bool {
	for _, other := range e.Values {
		if other == v {
			return false
		}
		if other.Number == v.Number {
			return true
		}
	}
	return false
}

// ===== MESSAGES =====

func (g *fileGen) genMessage(m *schema.Message, prefix string) {
	name := prefix + ToPascalCase(m.Name)

	for _, nested := range m.NestedEnums {
		g.genEnum(nested, name+"_")
	}
	for _, nested := range m.NestedTypes {
		g.genMessage(nested, name+"_")
	}

	g.genStruct(m, name)
	g.genOneofDecls(m, name)
	g.genSize(m, name)
	g.genMarshal(m, name)
	g.genUnmarshal(m, name)
}

func (g *fileGen) genStruct(m *schema.Message, name string) {
	g.p.P("")
	g.p.P("type %s struct {", name)
	g.p.In()
	for _, f := range m.Fields {
		g.p.P("%s %s", ToPascalCase(f.Name), g.fieldGoType(f))
	}
	for _, o := range m.OneofGroups {
		g.p.P("%s is%s_%s", ToPascalCase(o.Name), name, ToPascalCase(o.Name))
	}
	g.p.P("")
	g.p.P("unknownFields wire.UnknownFieldSet")
	g.p.Out()
	g.p.P("}")
}

func (g *fileGen) genOneofDecls(m *schema.Message, name string) {
	for _, o := range m.OneofGroups {
		iface := fmt.Sprintf("is%s_%s", name, ToPascalCase(o.Name))
		g.p.P("")
		g.p.P("type %s interface {", iface)
		g.p.In()
		g.p.P("%s()", iface)
		g.p.Out()
		g.p.P("}")
		for _, f := range o.Fields {
			wrapper := fmt.Sprintf("%s_%s", name, ToPascalCase(f.Name))
			g.p.P("")
			g.p.P("type %s struct {", wrapper)
			g.p.In()
			g.p.P("%s %s", ToPascalCase(f.Name), g.bareGoType(&f.Type))
			g.p.Out()
			g.p.P("}")
			g.p.P("")
			g.p.P("func (*%s) %s() {}", wrapper, iface)
		}
	}
}

// fieldGoType returns the struct field type for a non-oneof field.
func (g *fileGen) fieldGoType(f *schema.Field) string {
	bare := g.bareGoType(&f.Type)
	switch {
	case f.Type.Kind == schema.KindMap:
		return bare
	case f.Label == schema.LabelRepeated:
		return "[]" + bare
	case f.Label == schema.LabelOptional || f.Label == schema.LabelRequired:
		// Explicit presence. Bytes and messages already carry presence in
		// their nil value.
		if f.Type.Kind == schema.KindMessage || bare == "[]byte" {
			return bare
		}
		return "*" + bare
	default:
		return bare
	}
}

// bareGoType returns the element type for a field type: pointers for
// messages, plain scalars otherwise.
func (g *fileGen) bareGoType(t *schema.FieldType) string {
	switch t.Kind {
	case schema.KindPrimitive:
		return scalars[t.PrimitiveType].goType
	case schema.KindEnum:
		return goTypeName(t.EnumType, g.pkg)
	case schema.KindMessage:
		return "*" + goTypeName(t.MessageType, g.pkg)
	case schema.KindMap:
		return fmt.Sprintf("map[%s]%s", g.bareGoType(t.MapKey), g.bareGoType(t.MapValue))
	}
	return "interface{}"
}

// scalarFor adapts enums into the scalar table so most emission paths can
// treat them uniformly; the bool reports whether a cast through int32 is
// needed.
func (g *fileGen) scalarFor(t *schema.FieldType) (scalarInfo, bool) {
	if t.Kind == schema.KindEnum {
		return scalarInfo{
			goType:   goTypeName(t.EnumType, g.pkg),
			wireType: "wire.WireVarint",
			encode:   "EncodeEnum",
			decode:   "DecodeEnum",
			size:     "wire.Int32Size(int32(%s))",
			nonZero:  "%s != 0",
		}, true
	}
	return scalars[t.PrimitiveType], false
}

// encodeStmt returns the statement writing a scalar or enum value, no tag.
func (g *fileGen) encodeStmt(t *schema.FieldType, expr string) string {
	s, isEnum := g.scalarFor(t)
	if isEnum {
		return fmt.Sprintf("e.EncodeEnum(int32(%s))", expr)
	}
	return fmt.Sprintf("e.%s(%s)", s.encode, expr)
}

// framedSizeExpr returns the wire size of a singular framed field: tag plus
// value, for any field type.
func (g *fileGen) framedSizeExpr(t *schema.FieldType, num int32, expr string) string {
	if t.Kind == schema.KindMessage {
		return fmt.Sprintf("wire.MessageSize(%d, %s)", num, expr)
	}
	s, _ := g.scalarFor(t)
	return fmt.Sprintf("wire.TagSize(%d)+%s", num, s.sizeOf(expr))
}

// ===== SIZE =====

func (g *fileGen) genSize(m *schema.Message, name string) {
	g.p.P("")
	g.p.P("func (m *%s) Size() int {", name)
	g.p.In()
	g.p.P("var n int")
	for _, f := range m.Fields {
		g.sizeField(f)
	}
	for _, o := range m.OneofGroups {
		g.sizeOneof(o, name)
	}
	g.p.P("n += m.unknownFields.Size()")
	g.p.P("return n")
	g.p.Out()
	g.p.P("}")
}

func (g *fileGen) sizeField(f *schema.Field) {
	expr := "m." + ToPascalCase(f.Name)
	switch {
	case f.Type.Kind == schema.KindMap:
		g.sizeMap(f, expr)
	case f.Label == schema.LabelRepeated && f.Type.Kind == schema.KindMessage:
		g.p.P("for _, v := range %s {", expr)
		g.p.In()
		g.p.P("n += wire.MessageSize(%d, v)", f.Number)
		g.p.Out()
		g.p.P("}")
	case f.Label == schema.LabelRepeated && f.Packed:
		s, _ := g.scalarFor(&f.Type)
		g.p.P("if len(%s) > 0 {", expr)
		g.p.In()
		g.p.P("var l int")
		g.p.P("for _, v := range %s {", expr)
		g.p.In()
		g.p.P("l += %s", s.sizeOf("v"))
		g.p.Out()
		g.p.P("}")
		g.p.P("n += wire.TagSize(%d) + wire.VarintSize(uint64(l)) + l", f.Number)
		g.p.Out()
		g.p.P("}")
	case f.Label == schema.LabelRepeated:
		s, _ := g.scalarFor(&f.Type)
		g.p.P("for _, v := range %s {", expr)
		g.p.In()
		g.p.P("n += wire.TagSize(%d) + %s", f.Number, s.sizeOf("v"))
		g.p.Out()
		g.p.P("}")
	case f.Type.Kind == schema.KindMessage:
		g.p.P("if %s != nil {", expr)
		g.p.In()
		g.p.P("n += wire.MessageSize(%d, %s)", f.Number, expr)
		g.p.Out()
		g.p.P("}")
	case f.Label == schema.LabelOptional || f.Label == schema.LabelRequired:
		s, _ := g.scalarFor(&f.Type)
		if s.goType == "[]byte" {
			g.p.P("if %s != nil {", expr)
			g.p.In()
			g.p.P("n += wire.TagSize(%d) + %s", f.Number, s.sizeOf(expr))
		} else {
			g.p.P("if %s != nil {", expr)
			g.p.In()
			g.p.P("n += wire.TagSize(%d) + %s", f.Number, s.sizeOf("*"+expr))
		}
		g.p.Out()
		g.p.P("}")
	default:
		s, _ := g.scalarFor(&f.Type)
		g.p.P("if %s {", s.nonZeroOf(expr))
		g.p.In()
		g.p.P("n += wire.TagSize(%d) + %s", f.Number, s.sizeOf(expr))
		g.p.Out()
		g.p.P("}")
	}
}

func (g *fileGen) sizeMap(f *schema.Field, expr string) {
	keySize := g.framedSizeExpr(f.Type.MapKey, 1, "k")
	valSize := g.framedSizeExpr(f.Type.MapValue, 2, "v")
	g.p.P("for k, v := range %s {", expr)
	g.p.In()
	if f.Type.MapValue.Kind == schema.KindMessage {
		g.p.P("if v == nil {")
		g.p.In()
		g.p.P("v = &%s{}", g.bareGoType(f.Type.MapValue)[1:])
		g.p.Out()
		g.p.P("}")
	}
	g.p.P("n += wire.MapEntrySize(%d, %s, %s)", f.Number, keySize, valSize)
	g.p.Out()
	g.p.P("}")
}

func (g *fileGen) sizeOneof(o *schema.Oneof, name string) {
	g.p.P("switch c := m.%s.(type) {", ToPascalCase(o.Name))
	for _, f := range o.Fields {
		wrapper := fmt.Sprintf("%s_%s", name, ToPascalCase(f.Name))
		expr := "c." + ToPascalCase(f.Name)
		g.p.P("case *%s:", wrapper)
		g.p.In()
		if f.Type.Kind == schema.KindMessage {
			g.p.P("if %s != nil {", expr)
			g.p.In()
			g.p.P("n += wire.MessageSize(%d, %s)", f.Number, expr)
			g.p.Out()
			g.p.P("}")
		} else {
			s, _ := g.scalarFor(&f.Type)
			g.p.P("n += wire.TagSize(%d) + %s", f.Number, s.sizeOf(expr))
		}
		g.p.Out()
	}
	g.p.P("}")
}

// ===== MARSHAL =====

func (g *fileGen) genMarshal(m *schema.Message, name string) {
	g.p.P("")
	g.p.P("func (m *%s) MarshalTo(e *wire.Encoder) {", name)
	g.p.In()
	for _, f := range m.Fields {
		g.marshalField(f)
	}
	for _, o := range m.OneofGroups {
		g.marshalOneof(o, name)
	}
	g.p.P("m.unknownFields.MarshalTo(e)")
	g.p.Out()
	g.p.P("}")
}

func (g *fileGen) marshalField(f *schema.Field) {
	expr := "m." + ToPascalCase(f.Name)
	switch {
	case f.Type.Kind == schema.KindMap:
		g.marshalMap(f, expr)
	case f.Label == schema.LabelRepeated && f.Type.Kind == schema.KindMessage:
		g.p.P("for _, v := range %s {", expr)
		g.p.In()
		g.p.P("e.EncodeMessage(%d, v)", f.Number)
		g.p.Out()
		g.p.P("}")
	case f.Label == schema.LabelRepeated && f.Packed:
		s, _ := g.scalarFor(&f.Type)
		g.p.P("if len(%s) > 0 {", expr)
		g.p.In()
		g.p.P("var l int")
		g.p.P("for _, v := range %s {", expr)
		g.p.In()
		g.p.P("l += %s", s.sizeOf("v"))
		g.p.Out()
		g.p.P("}")
		g.p.P("e.EncodeTag(%d, wire.WireBytes)", f.Number)
		g.p.P("e.EncodeVarint(uint64(l))")
		g.p.P("for _, v := range %s {", expr)
		g.p.In()
		g.p.P("%s", g.encodeStmt(&f.Type, "v"))
		g.p.Out()
		g.p.P("}")
		g.p.Out()
		g.p.P("}")
	case f.Label == schema.LabelRepeated:
		s, _ := g.scalarFor(&f.Type)
		g.p.P("for _, v := range %s {", expr)
		g.p.In()
		g.p.P("e.EncodeTag(%d, %s)", f.Number, s.wireType)
		g.p.P("%s", g.encodeStmt(&f.Type, "v"))
		g.p.Out()
		g.p.P("}")
	case f.Type.Kind == schema.KindMessage:
		g.p.P("if %s != nil {", expr)
		g.p.In()
		g.p.P("e.EncodeMessage(%d, %s)", f.Number, expr)
		g.p.Out()
		g.p.P("}")
	case f.Label == schema.LabelOptional || f.Label == schema.LabelRequired:
		s, _ := g.scalarFor(&f.Type)
		val := "*" + expr
		if s.goType == "[]byte" {
			val = expr
		}
		g.p.P("if %s != nil {", expr)
		g.p.In()
		g.p.P("e.EncodeTag(%d, %s)", f.Number, s.wireType)
		g.p.P("%s", g.encodeStmt(&f.Type, val))
		g.p.Out()
		g.p.P("}")
	default:
		s, _ := g.scalarFor(&f.Type)
		g.p.P("if %s {", s.nonZeroOf(expr))
		g.p.In()
		g.p.P("e.EncodeTag(%d, %s)", f.Number, s.wireType)
		g.p.P("%s", g.encodeStmt(&f.Type, expr))
		g.p.Out()
		g.p.P("}")
	}
}

func (g *fileGen) marshalMap(f *schema.Field, expr string) {
	keySize := g.framedSizeExpr(f.Type.MapKey, 1, "k")
	valSize := g.framedSizeExpr(f.Type.MapValue, 2, "v")
	keyWire, _ := g.scalarFor(f.Type.MapKey)

	g.p.P("for k, v := range %s {", expr)
	g.p.In()
	if f.Type.MapValue.Kind == schema.KindMessage {
		g.p.P("if v == nil {")
		g.p.In()
		g.p.P("v = &%s{}", g.bareGoType(f.Type.MapValue)[1:])
		g.p.Out()
		g.p.P("}")
	}
	g.p.P("e.EncodeMapEntry(%d, %s, %s,", f.Number, keySize, valSize)
	g.p.In()
	g.p.P("func(e *wire.Encoder) {")
	g.p.In()
	g.p.P("e.EncodeTag(1, %s)", keyWire.wireType)
	g.p.P("%s", g.encodeStmt(f.Type.MapKey, "k"))
	g.p.Out()
	g.p.P("},")
	g.p.P("func(e *wire.Encoder) {")
	g.p.In()
	if f.Type.MapValue.Kind == schema.KindMessage {
		g.p.P("e.EncodeMessage(2, v)")
	} else {
		valWire, _ := g.scalarFor(f.Type.MapValue)
		g.p.P("e.EncodeTag(2, %s)", valWire.wireType)
		g.p.P("%s", g.encodeStmt(f.Type.MapValue, "v"))
	}
	g.p.Out()
	g.p.P("},")
	g.p.Out()
	g.p.P(")")
	g.p.Out()
	g.p.P("}")
}

func (g *fileGen) marshalOneof(o *schema.Oneof, name string) {
	g.p.P("switch c := m.%s.(type) {", ToPascalCase(o.Name))
	for _, f := range o.Fields {
		wrapper := fmt.Sprintf("%s_%s", name, ToPascalCase(f.Name))
		expr := "c." + ToPascalCase(f.Name)
		g.p.P("case *%s:", wrapper)
		g.p.In()
		if f.Type.Kind == schema.KindMessage {
			g.p.P("if %s != nil {", expr)
			g.p.In()
			g.p.P("e.EncodeMessage(%d, %s)", f.Number, expr)
			g.p.Out()
			g.p.P("}")
		} else {
			s, _ := g.scalarFor(&f.Type)
			g.p.P("e.EncodeTag(%d, %s)", f.Number, s.wireType)
			g.p.P("%s", g.encodeStmt(&f.Type, expr))
		}
		g.p.Out()
	}
	g.p.P("}")
}

// ===== UNMARSHAL =====

func (g *fileGen) genUnmarshal(m *schema.Message, name string) {
	g.p.P("")
	g.p.P("func (m *%s) Unmarshal(d *wire.Decoder) error {", name)
	g.p.In()
	g.p.P("for !d.Empty() {")
	g.p.In()
	g.p.P("num, wt, err := d.DecodeTag()")
	g.p.P("if err != nil {")
	g.p.In()
	g.p.P("return err")
	g.p.Out()
	g.p.P("}")
	g.p.P("switch num {")
	for _, f := range m.Fields {
		g.unmarshalCase(f, name, "")
	}
	for _, o := range m.OneofGroups {
		for _, f := range o.Fields {
			g.unmarshalCase(f, name, ToPascalCase(o.Name))
		}
	}
	g.p.P("default:")
	g.p.In()
	g.p.P("var raw []byte")
	g.p.P("raw, err = d.ReadRawValue(num, wt)")
	g.p.P("if err == nil {")
	g.p.In()
	g.p.P("m.unknownFields.Add(num, wt, raw)")
	g.p.Out()
	g.p.P("}")
	g.p.Out()
	g.p.P("}")
	g.p.P("if err != nil {")
	g.p.In()
	g.p.P("return err")
	g.p.Out()
	g.p.P("}")
	g.p.Out()
	g.p.P("}")
	g.genRequiredChecks(m)
	g.p.P("return nil")
	g.p.Out()
	g.p.P("}")
}

func (g *fileGen) genRequiredChecks(m *schema.Message) {
	for _, f := range m.Fields {
		if f.Label != schema.LabelRequired {
			continue
		}
		g.p.P("if m.%s == nil {", ToPascalCase(f.Name))
		g.p.In()
		g.p.P("return &wire.MissingRequiredFieldError{Field: %q}", f.Name)
		g.p.Out()
		g.p.P("}")
	}
}

// unmarshalCase emits one switch case. oneofName is non-empty for oneof
// members, whose decoded value is boxed into the case wrapper.
func (g *fileGen) unmarshalCase(f *schema.Field, name, oneofName string) {
	g.p.P("case %d:", f.Number)
	g.p.In()
	defer func() {
		g.p.P("if err != nil {")
		g.p.In()
		g.p.P("return wire.WrapField(err, %q)", f.Name)
		g.p.Out()
		g.p.P("}")
		g.p.Out()
	}()

	expr := "m." + ToPascalCase(f.Name)
	assign := func(valExpr string) string {
		if oneofName == "" {
			return fmt.Sprintf("%s = %s", expr, valExpr)
		}
		wrapper := fmt.Sprintf("%s_%s", name, ToPascalCase(f.Name))
		return fmt.Sprintf("m.%s = &%s{%s: %s}", oneofName, wrapper, ToPascalCase(f.Name), valExpr)
	}

	switch {
	case f.Type.Kind == schema.KindMap:
		g.unmarshalMap(f, expr)
	case f.Label == schema.LabelRepeated && f.Type.Kind == schema.KindMessage:
		elem := g.bareGoType(&f.Type)[1:]
		g.p.P("v := &%s{}", elem)
		g.p.P("err = d.DecodeMessage(v)")
		g.p.P("if err == nil {")
		g.p.In()
		g.p.P("%s = append(%s, v)", expr, expr)
		g.p.Out()
		g.p.P("}")
	case f.Label == schema.LabelRepeated:
		g.unmarshalRepeatedScalar(f, expr)
	case f.Type.Kind == schema.KindMessage:
		elem := g.bareGoType(&f.Type)[1:]
		if oneofName != "" {
			g.p.P("v := &%s{}", elem)
			g.p.P("err = d.DecodeMessage(v)")
			g.p.P("if err == nil {")
			g.p.In()
			g.p.P("%s", assign("v"))
			g.p.Out()
			g.p.P("}")
		} else {
			g.p.P("if %s == nil {", expr)
			g.p.In()
			g.p.P("%s = &%s{}", expr, elem)
			g.p.Out()
			g.p.P("}")
			g.p.P("err = d.DecodeMessage(%s)", expr)
		}
	default:
		g.unmarshalScalar(f, assign)
	}
}

func (g *fileGen) unmarshalScalar(f *schema.Field, assign func(string) string) {
	s, isEnum := g.scalarFor(&f.Type)
	pointer := (f.Label == schema.LabelOptional || f.Label == schema.LabelRequired) &&
		s.goType != "[]byte" && f.OneofIndex < 0

	if isEnum {
		g.p.P("var v int32")
		g.p.P("v, err = d.DecodeEnum()")
		g.p.P("if err == nil {")
		g.p.In()
		if pointer {
			g.p.P("ev := %s(v)", s.goType)
			g.p.P("%s", assign("&ev"))
		} else {
			g.p.P("%s", assign(fmt.Sprintf("%s(v)", s.goType)))
		}
		g.p.Out()
		g.p.P("}")
		return
	}

	g.p.P("var v %s", s.goType)
	g.p.P("v, err = d.%s()", s.decode)
	g.p.P("if err == nil {")
	g.p.In()
	if pointer {
		g.p.P("%s", assign("&v"))
	} else {
		g.p.P("%s", assign("v"))
	}
	g.p.Out()
	g.p.P("}")
}

// unmarshalRepeatedScalar accepts both packed and unpacked encodings for
// any repeated scalar, regardless of how the field is declared.
func (g *fileGen) unmarshalRepeatedScalar(f *schema.Field, expr string) {
	s, isEnum := g.scalarFor(&f.Type)
	appendStmt := fmt.Sprintf("%s = append(%s, v)", expr, expr)
	decodeInto := func() {
		if isEnum {
			g.p.P("var ev int32")
			g.p.P("ev, err = d.DecodeEnum()")
			g.p.P("if err == nil {")
			g.p.In()
			g.p.P("%s = append(%s, %s(ev))", expr, expr, s.goType)
			g.p.Out()
			g.p.P("}")
			return
		}
		g.p.P("var v %s", s.goType)
		g.p.P("v, err = d.%s()", s.decode)
		g.p.P("if err == nil {")
		g.p.In()
		g.p.P("%s", appendStmt)
		g.p.Out()
		g.p.P("}")
	}

	if s.wireType == "wire.WireBytes" {
		// Strings and bytes never pack; each occurrence is one element.
		decodeInto()
		return
	}

	g.p.P("if wt == wire.WireBytes {")
	g.p.In()
	g.p.P("err = d.DecodePacked(func(d *wire.Decoder) error {")
	g.p.In()
	if isEnum {
		g.p.P("ev, err := d.DecodeEnum()")
		g.p.P("if err != nil {")
		g.p.In()
		g.p.P("return err")
		g.p.Out()
		g.p.P("}")
		g.p.P("%s = append(%s, %s(ev))", expr, expr, s.goType)
	} else {
		g.p.P("v, err := d.%s()", s.decode)
		g.p.P("if err != nil {")
		g.p.In()
		g.p.P("return err")
		g.p.Out()
		g.p.P("}")
		g.p.P("%s", appendStmt)
	}
	g.p.P("return nil")
	g.p.Out()
	g.p.P("})")
	g.p.Out()
	g.p.P("} else {")
	g.p.In()
	decodeInto()
	g.p.Out()
	g.p.P("}")
}

func (g *fileGen) unmarshalMap(f *schema.Field, expr string) {
	keyType := g.bareGoType(f.Type.MapKey)
	valType := g.bareGoType(f.Type.MapValue)

	g.p.P("var mk %s", keyType)
	if f.Type.MapValue.Kind == schema.KindMessage {
		g.p.P("mv := &%s{}", valType[1:])
	} else {
		g.p.P("var mv %s", valType)
	}
	g.p.P("err = d.DecodeMapEntry(")
	g.p.In()
	g.p.P("func(d *wire.Decoder, _ wire.WireType) error {")
	g.p.In()
	g.genEntryFieldDecode(f.Type.MapKey, "mk")
	g.p.Out()
	g.p.P("},")
	g.p.P("func(d *wire.Decoder, _ wire.WireType) error {")
	g.p.In()
	if f.Type.MapValue.Kind == schema.KindMessage {
		g.p.P("return d.DecodeMessage(mv)")
	} else {
		g.genEntryFieldDecode(f.Type.MapValue, "mv")
	}
	g.p.Out()
	g.p.P("},")
	g.p.Out()
	g.p.P(")")
	g.p.P("if err == nil {")
	g.p.In()
	g.p.P("if %s == nil {", expr)
	g.p.In()
	g.p.P("%s = make(map[%s]%s)", expr, keyType, valType)
	g.p.Out()
	g.p.P("}")
	g.p.P("%s[mk] = mv", expr)
	g.p.Out()
	g.p.P("}")
}

// genEntryFieldDecode emits the body of a map entry key/value closure
// assigning into target.
func (g *fileGen) genEntryFieldDecode(t *schema.FieldType, target string) {
	s, isEnum := g.scalarFor(t)
	if isEnum {
		g.p.P("ev, err := d.DecodeEnum()")
		g.p.P("if err != nil {")
		g.p.In()
		g.p.P("return err")
		g.p.Out()
		g.p.P("}")
		g.p.P("%s = %s(ev)", target, s.goType)
		g.p.P("return nil")
		return
	}
	g.p.P("v, err := d.%s()", s.decode)
	g.p.P("if err != nil {")
	g.p.In()
	g.p.P("return err")
	g.p.Out()
	g.p.P("}")
	g.p.P("%s = v", target)
	g.p.P("return nil")
}
