package dialect

import "testing"

func TestByName(t *testing.T) {
	cases := []struct {
		name string
		want Dialect
		ok   bool
	}{
		{"v1", V1, true},
		{"v4", V4, true},
		{"v5", Dialect{}, false},
	}
	for _, c := range cases {
		got, ok := ByName(c.name)
		if ok != c.ok {
			t.Fatalf("ByName(%q) ok = %v, want %v", c.name, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ByName(%q) = %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestFeatureMatrix(t *testing.T) {
	if !V3.TypedVars || !V3.ReturnTypeCheck {
		t.Fatalf("v3 must carry typed variables and return-type enforcement")
	}
	if V3.LazyParams || V3.Exceptions || V3.DivZeroRaises {
		t.Fatalf("v3 must not carry any v4 feature")
	}
	if V4.TypedVars || V4.ReturnTypeCheck {
		t.Fatalf("v4 variables are untyped; typing is a v3-only feature")
	}
	if !V4.LazyParams || !V4.ShortCircuit || !V4.Exceptions || !V4.DivZeroRaises {
		t.Fatalf("v4 must carry laziness, short-circuit, and exceptions")
	}
}
