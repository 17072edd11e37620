package schema

import (
	"fmt"
)

// Field numbers reserved by the protobuf implementation itself.
const (
	minFieldNumber       = 1
	maxFieldNumber       = 1<<29 - 1
	firstImplReservedNum = 19000
	lastImplReservedNum  = 19999
)

// ValidateMessage checks the design-time invariants of a single message:
// field numbers unique within the message (oneof members included), numbers
// inside the legal range and outside both the implementation-reserved range
// and the message's own declared reserved ranges, and oneof case names
// unique. Violations are fatal to a generation run, not runtime errors.
func ValidateMessage(msg *Message) error {
	seen := make(map[int32]string)

	check := func(f *Field) error {
		if f.Number < minFieldNumber || f.Number > maxFieldNumber {
			return fmt.Errorf("message %s: field %s number %d out of range [%d, %d]",
				msg.Name, f.Name, f.Number, minFieldNumber, maxFieldNumber)
		}
		if f.Number >= firstImplReservedNum && f.Number <= lastImplReservedNum {
			return fmt.Errorf("message %s: field %s uses implementation-reserved number %d",
				msg.Name, f.Name, f.Number)
		}
		for _, r := range msg.ReservedRanges {
			if r.Contains(f.Number) {
				return fmt.Errorf("message %s: field %s uses reserved number %d",
					msg.Name, f.Name, f.Number)
			}
		}
		if prev, dup := seen[f.Number]; dup {
			return fmt.Errorf("message %s: duplicate field number %d (%s and %s)",
				msg.Name, f.Number, prev, f.Name)
		}
		seen[f.Number] = f.Name
		return nil
	}

	for _, f := range msg.Fields {
		if err := check(f); err != nil {
			return err
		}
	}

	oneofNames := make(map[string]struct{})
	for _, o := range msg.OneofGroups {
		if _, dup := oneofNames[o.Name]; dup {
			return fmt.Errorf("message %s: duplicate oneof name %s", msg.Name, o.Name)
		}
		oneofNames[o.Name] = struct{}{}

		caseNames := make(map[string]struct{})
		for _, f := range o.Fields {
			if _, dup := caseNames[f.Name]; dup {
				return fmt.Errorf("message %s: duplicate oneof case %s in %s",
					msg.Name, f.Name, o.Name)
			}
			caseNames[f.Name] = struct{}{}
			if err := check(f); err != nil {
				return err
			}
		}
	}

	for _, nested := range msg.NestedTypes {
		if err := ValidateMessage(nested); err != nil {
			return err
		}
	}
	for _, nested := range msg.NestedEnums {
		if err := ValidateEnum(nested); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEnum checks that enum value names are unique and numbers are
// unique unless allow_alias is set.
func ValidateEnum(enum *Enum) error {
	names := make(map[string]struct{})
	numbers := make(map[int32]string)
	for _, v := range enum.Values {
		if _, dup := names[v.Name]; dup {
			return fmt.Errorf("enum %s: duplicate value name %s", enum.Name, v.Name)
		}
		names[v.Name] = struct{}{}
		if prev, dup := numbers[v.Number]; dup && !enum.AllowAlias {
			return fmt.Errorf("enum %s: duplicate value number %d (%s and %s) without allow_alias",
				enum.Name, v.Number, prev, v.Name)
		}
		numbers[v.Number] = v.Name
	}
	return nil
}

// ValidateFile validates every top-level message and enum in a file.
func ValidateFile(file *File) error {
	for _, msg := range file.Messages {
		if err := ValidateMessage(msg); err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
	}
	for _, enum := range file.Enums {
		if err := ValidateEnum(enum); err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
	}
	return nil
}
