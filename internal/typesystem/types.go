package typesystem

import "github.com/funvibe/typeinfer/internal/config"

// Type is the handle the front-end gives out for a concrete type. Clients
// outside the front-end treat it as opaque and ask the front-end whether two
// handles denote the same type.
type Type interface {
	String() string
	typeNode()
}

// TCon is a named, non-parameterized type (number, string, ...).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }
func (t TCon) typeNode()      {}

var (
	Number  Type = TCon{Name: config.NumberTypeName}
	String  Type = TCon{Name: config.StringTypeName}
	Boolean Type = TCon{Name: config.BooleanTypeName}
	Null    Type = TCon{Name: config.NullTypeName}
	Object  Type = TCon{Name: config.ObjectTypeName}
	Any     Type = TCon{Name: config.AnyTypeName}
	Unknown Type = TCon{Name: config.UnknownTypeName}
)

var builtins = map[string]Type{
	config.NumberTypeName:  Number,
	config.StringTypeName:  String,
	config.BooleanTypeName: Boolean,
	config.NullTypeName:    Null,
	config.ObjectTypeName:  Object,
	config.AnyTypeName:     Any,
	config.UnknownTypeName: Unknown,
}

// Lookup returns the built-in type with the given name.
func Lookup(name string) (Type, bool) {
	t, ok := builtins[name]
	return t, ok
}

// Identical reports whether a and b denote the same type.
func Identical(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ca, okA := a.(TCon)
	cb, okB := b.(TCon)
	if okA && okB {
		return ca.Name == cb.Name
	}
	return false
}

// IsPrimitive reports whether t is one of the primitive value types.
func IsPrimitive(t Type) bool {
	return Identical(t, Number) || Identical(t, String) || Identical(t, Boolean) || Identical(t, Null)
}

// IsDynamic reports whether t opts out of checking (any, unknown).
func IsDynamic(t Type) bool {
	return Identical(t, Any) || Identical(t, Unknown)
}
