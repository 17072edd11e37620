package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pbweave/pbweave/schema"
)

// Registry stores the schema graph and its symbol table. The generator and
// the compatibility checks look messages and enums up here by fully
// qualified name. Once built, a Registry is read-only and safe to share
// across goroutines.
type Registry struct {
	// ProtoDirectories are the include paths used to resolve imports when
	// loading textual .proto files.
	ProtoDirectories []string

	repo     *schema.Repo
	messages map[string]*schema.Message // fully qualified name -> message
	enums    map[string]*schema.Enum    // fully qualified name -> enum
	services map[string]*schema.Service // fully qualified name -> service
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		repo:     &schema.Repo{Files: make(map[string]*schema.File)},
		messages: make(map[string]*schema.Message),
		enums:    make(map[string]*schema.Enum),
		services: make(map[string]*schema.Service),
	}
}

// Files returns the loaded files keyed by path.
func (r *Registry) Files() map[string]*schema.File {
	return r.repo.Files
}

// buildSymbolTable registers every name, validates each file's descriptors,
// and resolves type references. It runs after any load and fails the whole
// load on the first violation.
func (r *Registry) buildSymbolTable() error {
	// Pass 1: register all message, enum, and service names.
	for _, file := range r.repo.Files {
		if err := r.registerNames(file); err != nil {
			return err
		}
	}

	// Pass 2: validate descriptors.
	for _, file := range r.repo.Files {
		if err := schema.ValidateFile(file); err != nil {
			return err
		}
	}

	// Pass 3: resolve message/enum references to fully qualified names.
	for _, file := range r.repo.Files {
		if err := r.resolveFile(file); err != nil {
			return err
		}
	}

	return nil
}

// registerNames registers all names declared in a file.
func (r *Registry) registerNames(file *schema.File) error {
	pkg := file.Package
	for _, msg := range file.Messages {
		fullName := r.fullName(pkg, msg.Name)
		if _, dup := r.messages[fullName]; dup {
			return fmt.Errorf("duplicate message %s", fullName)
		}
		r.messages[fullName] = msg
		if err := r.registerNestedNames(pkg, msg.Name, msg); err != nil {
			return err
		}
	}
	for _, enum := range file.Enums {
		fullName := r.fullName(pkg, enum.Name)
		if _, dup := r.enums[fullName]; dup {
			return fmt.Errorf("duplicate enum %s", fullName)
		}
		r.enums[fullName] = enum
	}
	for _, service := range file.Services {
		r.services[r.fullName(pkg, service.Name)] = service
	}
	return nil
}

// registerNestedNames registers nested message and enum names.
func (r *Registry) registerNestedNames(pkg, parentName string, msg *schema.Message) error {
	for _, nested := range msg.NestedTypes {
		nestedName := parentName + "." + nested.Name
		fullName := r.fullName(pkg, nestedName)
		if _, dup := r.messages[fullName]; dup {
			return fmt.Errorf("duplicate message %s", fullName)
		}
		r.messages[fullName] = nested
		if err := r.registerNestedNames(pkg, nestedName, nested); err != nil {
			return err
		}
	}
	for _, nested := range msg.NestedEnums {
		fullName := r.fullName(pkg, parentName+"."+nested.Name)
		if _, dup := r.enums[fullName]; dup {
			return fmt.Errorf("duplicate enum %s", fullName)
		}
		r.enums[fullName] = nested
	}
	return nil
}

func (r *Registry) fullName(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// resolveFile resolves every field type reference in a file.
func (r *Registry) resolveFile(file *schema.File) error {
	for _, msg := range file.Messages {
		if err := r.resolveMessage(file.Package, msg.Name, msg); err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
	}
	return nil
}

func (r *Registry) resolveMessage(pkg, scope string, msg *schema.Message) error {
	resolve := func(f *schema.Field) error {
		if err := r.resolveType(pkg, scope, &f.Type); err != nil {
			return fmt.Errorf("message %s, field %s: %w", msg.Name, f.Name, err)
		}
		// Message-typed fields never pack; the builder could not tell
		// whether a named type would resolve to an enum.
		if f.Type.Kind == schema.KindMessage {
			f.Packed = false
		}
		return nil
	}
	for _, f := range msg.Fields {
		if err := resolve(f); err != nil {
			return err
		}
	}
	for _, o := range msg.OneofGroups {
		for _, f := range o.Fields {
			if err := resolve(f); err != nil {
				return err
			}
		}
	}
	for _, nested := range msg.NestedTypes {
		if err := r.resolveMessage(pkg, scope+"."+nested.Name, nested); err != nil {
			return err
		}
	}
	return nil
}

// resolveType rewrites a named type reference to its fully qualified form
// and fixes its kind: the textual front-end cannot tell a message reference
// from an enum reference, so the symbol table decides here.
func (r *Registry) resolveType(pkg, scope string, t *schema.FieldType) error {
	switch t.Kind {
	case schema.KindPrimitive:
		return nil
	case schema.KindMap:
		if err := r.resolveType(pkg, scope, t.MapKey); err != nil {
			return err
		}
		return r.resolveType(pkg, scope, t.MapValue)
	case schema.KindMessage, schema.KindEnum:
		name := t.MessageType
		if t.Kind == schema.KindEnum {
			name = t.EnumType
		}
		full, kind, err := r.lookupName(pkg, scope, name)
		if err != nil {
			return err
		}
		if kind == schema.KindEnum {
			t.Kind = schema.KindEnum
			t.EnumType = full
			t.MessageType = ""
		} else {
			t.Kind = schema.KindMessage
			t.MessageType = full
			t.EnumType = ""
		}
		return nil
	default:
		return fmt.Errorf("unknown type kind %q", t.Kind)
	}
}

// lookupName resolves a possibly-relative type name the way the reference
// implementation does: a leading dot is fully qualified; otherwise the
// innermost enclosing scope wins, walking outward to the package root.
func (r *Registry) lookupName(pkg, scope, name string) (string, schema.TypeKind, error) {
	if strings.HasPrefix(name, ".") {
		trimmed := strings.TrimPrefix(name, ".")
		if kind, ok := r.kindOf(trimmed); ok {
			return trimmed, kind, nil
		}
		return "", "", fmt.Errorf("unresolved type reference %s", name)
	}

	prefix := r.fullName(pkg, scope)
	parts := strings.Split(prefix, ".")
	for len(parts) > 0 {
		candidate := strings.Join(parts, ".") + "." + name
		if kind, ok := r.kindOf(candidate); ok {
			return candidate, kind, nil
		}
		parts = parts[:len(parts)-1]
	}
	if kind, ok := r.kindOf(name); ok {
		return name, kind, nil
	}
	return "", "", fmt.Errorf("unresolved type reference %s", name)
}

func (r *Registry) kindOf(fullName string) (schema.TypeKind, bool) {
	if _, ok := r.messages[fullName]; ok {
		return schema.KindMessage, true
	}
	if _, ok := r.enums[fullName]; ok {
		return schema.KindEnum, true
	}
	return "", false
}

// GetMessage retrieves a message definition by name, trying an exact match
// first and a package-suffix match second.
func (r *Registry) GetMessage(name string) (*schema.Message, error) {
	if msg, exists := r.messages[name]; exists {
		return msg, nil
	}
	for fullName, msg := range r.messages {
		if strings.HasSuffix(fullName, "."+name) {
			return msg, nil
		}
	}
	return nil, fmt.Errorf("message not found: %s", name)
}

// GetEnum retrieves an enum definition by name.
func (r *Registry) GetEnum(name string) (*schema.Enum, error) {
	if enum, exists := r.enums[name]; exists {
		return enum, nil
	}
	for fullName, enum := range r.enums {
		if strings.HasSuffix(fullName, "."+name) {
			return enum, nil
		}
	}
	return nil, fmt.Errorf("enum not found: %s", name)
}

// GetService retrieves a service definition by name.
func (r *Registry) GetService(name string) (*schema.Service, error) {
	if service, exists := r.services[name]; exists {
		return service, nil
	}
	for fullName, service := range r.services {
		if strings.HasSuffix(fullName, "."+name) {
			return service, nil
		}
	}
	return nil, fmt.Errorf("service not found: %s", name)
}

// ListMessages returns all registered message names, sorted.
func (r *Registry) ListMessages() []string {
	names := make([]string, 0, len(r.messages))
	for name := range r.messages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListEnums returns all registered enum names, sorted.
func (r *Registry) ListEnums() []string {
	names := make([]string, 0, len(r.enums))
	for name := range r.enums {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListServices returns all registered service names, sorted.
func (r *Registry) ListServices() []string {
	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MapEntryMessage returns the synthetic two-field entry message implicitly
// defined by a map field. On the wire, a map field is indistinguishable
// from a repeated occurrence of this message.
func MapEntryMessage(fieldName string, keyType, valueType *schema.FieldType) *schema.Message {
	return &schema.Message{
		Name:     entryTypeName(fieldName),
		MapEntry: true,
		Fields: []*schema.Field{
			{
				Name:       "key",
				Number:     1,
				Label:      schema.LabelSingular,
				Type:       *keyType,
				OneofIndex: -1,
			},
			{
				Name:       "value",
				Number:     2,
				Label:      schema.LabelSingular,
				Type:       *valueType,
				OneofIndex: -1,
			},
		},
	}
}

func entryTypeName(fieldName string) string {
	parts := strings.Split(fieldName, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "") + "Entry"
}
