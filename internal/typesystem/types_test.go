package typesystem

import "testing"

func TestIdentical(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"same builtin", Number, Number, true},
		{"fresh handle same name", TCon{Name: "number"}, Number, true},
		{"different builtins", Number, String, false},
		{"nil and nil", nil, nil, true},
		{"nil and type", nil, Number, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identical(tt.a, tt.b); got != tt.want {
				t.Errorf("Identical(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"number", "string", "boolean", "null", "object", "any", "unknown"} {
		typ, ok := Lookup(name)
		if !ok {
			t.Errorf("Lookup(%q) not found", name)
			continue
		}
		if typ.String() != name {
			t.Errorf("Lookup(%q).String() = %q", name, typ.String())
		}
	}
	if _, ok := Lookup("Number"); ok {
		t.Error("type names are case-sensitive")
	}
}

func TestClassification(t *testing.T) {
	if !IsPrimitive(String) || IsPrimitive(Object) {
		t.Error("string is primitive, object is not")
	}
	if !IsDynamic(Any) || !IsDynamic(Unknown) || IsDynamic(Number) {
		t.Error("only any and unknown are dynamic")
	}
}
