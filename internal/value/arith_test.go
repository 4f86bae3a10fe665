package value

import "testing"

func TestAddPromotesToDoubleForIntegerValuedDouble(t *testing.T) {
	got := Add(Double(2.0), Int32(3))
	if got.Kind() != KindDouble {
		t.Fatalf("Add(2.0, 3).Kind() = %v, want KindDouble", got.Kind())
	}
	if got.ToDouble() != 5.0 {
		t.Fatalf("Add(2.0, 3) = %v, want 5.0", got.ToDouble())
	}
}

func TestSubAndMulAlsoPromoteOnIntegerValuedDouble(t *testing.T) {
	if got := Sub(Double(5.0), Int32(2)); got.Kind() != KindDouble {
		t.Errorf("Sub(5.0, 2).Kind() = %v, want KindDouble", got.Kind())
	}
	if got := Mul(Double(2.0), Int32(3)); got.Kind() != KindDouble {
		t.Errorf("Mul(2.0, 3).Kind() = %v, want KindDouble", got.Kind())
	}
}

func TestAddKeepsIntWhenBothOperandsAreInt(t *testing.T) {
	got := Add(Int32(2), Int32(3))
	if got.Kind() != KindInt32 || got.ToInt32() != 5 {
		t.Fatalf("Add(2, 3) = %v (%v), want Int32(5)", got.ToInt32(), got.Kind())
	}
}

func TestDivStillTruncatesOnIntegerValuedDouble(t *testing.T) {
	got, err := Div(Double(6.0), Int32(4))
	if err != ArithNone {
		t.Fatalf("Div returned error %v", err)
	}
	if got.Kind() != KindInt32 || got.ToInt32() != 1 {
		t.Fatalf("Div(6.0, 4) = %v (%v), want Int32(1): integer-valued-double quirk is division-only", got.ToInt32(), got.Kind())
	}
}

func TestDivPromotesToDoubleForFractionalOperand(t *testing.T) {
	got, err := Div(Double(6.5), Int32(4))
	if err != ArithNone {
		t.Fatalf("Div returned error %v", err)
	}
	if got.Kind() != KindDouble {
		t.Fatalf("Div(6.5, 4).Kind() = %v, want KindDouble", got.Kind())
	}
}

func TestNegPromotesToDoubleForFractionalOperand(t *testing.T) {
	if got := Neg(Double(2.0)); got.Kind() != KindDouble {
		t.Errorf("Neg(2.0).Kind() = %v, want KindDouble", got.Kind())
	}
	if got := Neg(Int32(2)); got.Kind() != KindInt32 || got.ToInt32() != -2 {
		t.Errorf("Neg(2) = %v (%v), want Int32(-2)", got.ToInt32(), got.Kind())
	}
}
