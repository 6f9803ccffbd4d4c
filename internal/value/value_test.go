package value

import (
	"testing"

	"github.com/Francis589-png/JUSUPLUSPLUS/internal/errs"
)

func TestAddNumbersAndStrings(t *testing.T) {
	n, err := Add(Number(2), Number(3))
	if err != nil || n.AsNumber() != 5 {
		t.Fatalf("Add(2,3) = %v, %v, want 5, nil", n, err)
	}
	s, err := Add(String("foo"), String("bar"))
	if err != nil || s.AsString() != "foobar" {
		t.Fatalf("Add(foo,bar) = %v, %v, want foobar, nil", s, err)
	}
}

func TestAddMixedTypesIsTypeError(t *testing.T) {
	_, err := Add(Number(1), String("x"))
	assertTypeError(t, err)
}

func TestMulTextRepeat(t *testing.T) {
	s, err := Mul(String("ab"), Number(3))
	if err != nil || s.AsString() != "ababab" {
		t.Fatalf("Mul(ab,3) = %v, %v, want ababab, nil", s, err)
	}
	s2, err := Mul(Number(3), String("ab"))
	if err != nil || s2.AsString() != "ababab" {
		t.Fatalf("Mul(3,ab) = %v, %v, want ababab, nil", s2, err)
	}
}

func TestMulNegativeRepeatCountIsTypeError(t *testing.T) {
	_, err := Mul(String("ab"), Number(-1))
	assertTypeError(t, err)
}

func TestDivByZeroIsZeroDivisionError(t *testing.T) {
	_, err := Div(Number(1), Number(0))
	cerr, ok := err.(*errs.Error)
	if !ok || cerr.Kind != errs.ZeroDivision {
		t.Fatalf("Div(1,0) error = %#v, want ZeroDivision", err)
	}
}

func TestCompareNumbersAndStrings(t *testing.T) {
	cmp, err := Compare(Number(1), Number(2))
	if err != nil || cmp >= 0 {
		t.Fatalf("Compare(1,2) = %d, %v, want <0, nil", cmp, err)
	}
	cmp, err = Compare(String("a"), String("b"))
	if err != nil || cmp >= 0 {
		t.Fatalf("Compare(a,b) = %d, %v, want <0, nil", cmp, err)
	}
}

func TestCompareMismatchedTypesIsTypeError(t *testing.T) {
	_, err := Compare(Number(1), String("1"))
	assertTypeError(t, err)
}

func TestEqualNoCoercionAcrossTypes(t *testing.T) {
	if Equal(Number(1), String("1")) {
		t.Error("Equal(1, \"1\") = true, want false (no cross-type coercion)")
	}
	if !Equal(Number(1), Number(1)) {
		t.Error("Equal(1, 1) = false, want true")
	}
	if Equal(Bool(true), Number(1)) {
		t.Error("Equal(true, 1) = true, want false")
	}
}

func TestInspectFormatsIntegralNumbersWithTrailingZero(t *testing.T) {
	if got := Inspect(Number(4)); got != "4.0" {
		t.Errorf("Inspect(4) = %q, want %q", got, "4.0")
	}
	if got := Inspect(Number(4.5)); got != "4.5" {
		t.Errorf("Inspect(4.5) = %q, want %q", got, "4.5")
	}
}

func TestInspectArrayAndMap(t *testing.T) {
	arr := Array([]Value{Number(1), String("x")})
	if got := Inspect(arr); got != `[1.0, x]` {
		t.Errorf("Inspect(array) = %q, want %q", got, `[1.0, x]`)
	}

	m := NewMap()
	m.Set("a", Number(1))
	if got := Inspect(Mapping(m)); got != `{a: 1.0}` {
		t.Errorf("Inspect(map) = %q, want %q", got, `{a: 1.0}`)
	}
}

func TestTruthy(t *testing.T) {
	emptyMap := NewMap()
	filledMap := NewMap()
	filledMap.Set("k", Number(1))

	falsy := []Value{Null, Bool(false), Number(0), String(""), Array(nil), Mapping(emptyMap)}
	for _, v := range falsy {
		if v.Truthy() {
			t.Errorf("Truthy(%v) = true, want false", v)
		}
	}
	truthy := []Value{Bool(true), Number(1), String("x"), Array([]Value{Number(1)}), Mapping(filledMap)}
	for _, v := range truthy {
		if !v.Truthy() {
			t.Errorf("Truthy(%v) = false, want true", v)
		}
	}
}

func assertTypeError(t *testing.T, err error) {
	t.Helper()
	cerr, ok := err.(*errs.Error)
	if !ok || cerr.Kind != errs.Type {
		t.Fatalf("error = %#v, want errs.Type", err)
	}
}
