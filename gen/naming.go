package gen

import (
	"fmt"
	"strings"

	"github.com/pbweave/pbweave/schema"
)

// ToPascalCase converts snake_case proto identifiers to Go exported names.
func ToPascalCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// ToCamelCase converts snake_case to lowerCamelCase.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}
	return strings.ToLower(pascal[:1]) + pascal[1:]
}

// goTypeName maps a fully qualified proto type name to the flattened Go
// identifier this generator emits: the file's package prefix is stripped
// and nesting dots become underscores, protoc-gen-go style.
func goTypeName(fullName, protoPackage string) string {
	name := fullName
	if protoPackage != "" {
		name = strings.TrimPrefix(name, protoPackage+".")
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = ToPascalCase(p)
	}
	return strings.Join(parts, "_")
}

// scalarInfo drives per-primitive emission. Size and zero-check fragments
// are format strings taking the value expression.
type scalarInfo struct {
	goType   string
	wireType string
	encode   string // Encoder method
	decode   string // Decoder method
	size     string // size expression, %s = value
	nonZero  string // non-default test, %s = value
}

var scalars = map[schema.PrimitiveType]scalarInfo{
	schema.TypeDouble: {
		goType: "float64", wireType: "wire.WireFixed64",
		encode: "EncodeDouble", decode: "DecodeDouble",
		size: "8", nonZero: "%s != 0",
	},
	schema.TypeFloat: {
		goType: "float32", wireType: "wire.WireFixed32",
		encode: "EncodeFloat", decode: "DecodeFloat",
		size: "4", nonZero: "%s != 0",
	},
	schema.TypeInt64: {
		goType: "int64", wireType: "wire.WireVarint",
		encode: "EncodeInt64", decode: "DecodeInt64",
		size: "wire.Int64Size(%s)", nonZero: "%s != 0",
	},
	schema.TypeUint64: {
		goType: "uint64", wireType: "wire.WireVarint",
		encode: "EncodeUint64", decode: "DecodeUint64",
		size: "wire.VarintSize(%s)", nonZero: "%s != 0",
	},
	schema.TypeInt32: {
		goType: "int32", wireType: "wire.WireVarint",
		encode: "EncodeInt32", decode: "DecodeInt32",
		size: "wire.Int32Size(%s)", nonZero: "%s != 0",
	},
	schema.TypeFixed64: {
		goType: "uint64", wireType: "wire.WireFixed64",
		encode: "EncodeFixed64", decode: "DecodeFixed64",
		size: "8", nonZero: "%s != 0",
	},
	schema.TypeFixed32: {
		goType: "uint32", wireType: "wire.WireFixed32",
		encode: "EncodeFixed32", decode: "DecodeFixed32",
		size: "4", nonZero: "%s != 0",
	},
	schema.TypeBool: {
		goType: "bool", wireType: "wire.WireVarint",
		encode: "EncodeBool", decode: "DecodeBool",
		size: "1", nonZero: "%s",
	},
	schema.TypeString: {
		goType: "string", wireType: "wire.WireBytes",
		encode: "EncodeString", decode: "DecodeString",
		size: "wire.StringSize(%s)", nonZero: `%s != ""`,
	},
	schema.TypeBytes: {
		goType: "[]byte", wireType: "wire.WireBytes",
		encode: "EncodeBytes", decode: "DecodeBytes",
		size: "wire.BytesSize(%s)", nonZero: "len(%s) > 0",
	},
	schema.TypeUint32: {
		goType: "uint32", wireType: "wire.WireVarint",
		encode: "EncodeUint32", decode: "DecodeUint32",
		size: "wire.VarintSize(uint64(%s))", nonZero: "%s != 0",
	},
	schema.TypeSfixed32: {
		goType: "int32", wireType: "wire.WireFixed32",
		encode: "EncodeSfixed32", decode: "DecodeSfixed32",
		size: "4", nonZero: "%s != 0",
	},
	schema.TypeSfixed64: {
		goType: "int64", wireType: "wire.WireFixed64",
		encode: "EncodeSfixed64", decode: "DecodeSfixed64",
		size: "8", nonZero: "%s != 0",
	},
	schema.TypeSint32: {
		goType: "int32", wireType: "wire.WireVarint",
		encode: "EncodeSint32", decode: "DecodeSint32",
		size: "wire.Sint32Size(%s)", nonZero: "%s != 0",
	},
	schema.TypeSint64: {
		goType: "int64", wireType: "wire.WireVarint",
		encode: "EncodeSint64", decode: "DecodeSint64",
		size: "wire.Sint64Size(%s)", nonZero: "%s != 0",
	},
}

func (s scalarInfo) sizeOf(expr string) string {
	if strings.Contains(s.size, "%s") {
		return fmt.Sprintf(s.size, expr)
	}
	return s.size
}

func (s scalarInfo) nonZeroOf(expr string) string {
	return fmt.Sprintf(s.nonZero, expr)
}
