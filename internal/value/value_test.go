package value

import "testing"

func TestConstructorsAndKind(t *testing.T) {
	cases := []struct {
		v    *Value
		kind Kind
	}{
		{Null(), KindNull},
		{Bool(true), KindBool},
		{Int32(7), KindInt32},
		{Uint32(7), KindUint32},
		{Double(1.5), KindDouble},
		{String("x"), KindString},
		{IntArray([]int32{1, 2}), KindIntArray},
		{DoubleArray([]float64{1, 2}), KindDoubleArray},
		{StringArray([]string{"a"}), KindStringArray},
		{Struct(nil), KindStruct},
		{Pointer(nil), KindPointer},
	}
	for _, c := range cases {
		if got := c.v.Kind(); got != c.kind {
			t.Errorf("Kind() = %v, want %v", got, c.kind)
		}
	}
}

func TestNilReceiverIsNull(t *testing.T) {
	var v *Value
	if !v.IsNull() {
		t.Fatal("nil *Value should be null")
	}
	if v.Kind() != KindNull {
		t.Fatalf("Kind() = %v, want KindNull", v.Kind())
	}
	if v.ToInt32() != 0 || v.ToDouble() != 0 || v.ToBool() != false {
		t.Fatal("nil receiver conversions should all be zero values")
	}
}

func TestToInt32Coercion(t *testing.T) {
	cases := []struct {
		v    *Value
		want int32
	}{
		{Bool(true), 1},
		{Bool(false), 0},
		{Int32(42), 42},
		{Double(3.9), 3},
		{Double(-3.9), -3},
		{String("  17 apples"), 17},
		{String("nope"), 0},
		{Null(), 0},
	}
	for _, c := range cases {
		if got := c.v.ToInt32(); got != c.want {
			t.Errorf("ToInt32(%v) = %d, want %d", c.v.DisplayString(), got, c.want)
		}
	}
}

func TestEqualCrossNumericPromotion(t *testing.T) {
	if !Equal(Int32(3), Double(3.0)) {
		t.Error("int 3 should equal double 3.0")
	}
	if Equal(Int32(3), Double(3.1)) {
		t.Error("int 3 should not equal double 3.1")
	}
	if !Equal(Null(), Null()) {
		t.Error("null should equal null")
	}
	if Equal(Null(), Int32(0)) {
		t.Error("null should not equal a zero value")
	}
	if !Equal(IntArray([]int32{1, 2}), IntArray([]int32{1, 2})) {
		t.Error("equal int arrays should compare equal")
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := IntArray([]int32{1, 2, 3})
	clone := original.Clone()
	clone.IntElements()[0] = 99
	if original.IntElements()[0] == 99 {
		t.Fatal("mutating the clone's backing array mutated the original")
	}
}

func TestDisplayStringIntegerValuedDouble(t *testing.T) {
	if got := Double(4.0).DisplayString(); got != "4" {
		t.Errorf("DisplayString(4.0) = %q, want %q", got, "4")
	}
	if got := Double(4.5).DisplayString(); got != "4.5" {
		t.Errorf("DisplayString(4.5) = %q, want %q", got, "4.5")
	}
}

func TestAppendJSONArrayOfZeros(t *testing.T) {
	got := IntArray([]int32{0, 0, 0}).JSON()
	if got != "[0,0,0]" {
		t.Errorf("JSON() = %q, want %q", got, "[0,0,0]")
	}
}

func TestAppendJSONStructPreservesOrder(t *testing.T) {
	s := Struct([]Member{
		{Name: "b", Value: Int32(2)},
		{Name: "a", Value: Int32(1)},
	})
	if got, want := s.JSON(), `{"b":2,"a":1}`; got != want {
		t.Errorf("JSON() = %q, want %q", got, want)
	}
}

func TestSizeOf(t *testing.T) {
	if Int32(1).SizeOf() != 4 {
		t.Error("int32 sizeof should be 4")
	}
	if Bool(true).SizeOf() != 1 {
		t.Error("bool sizeof should be 1")
	}
	if Double(1).SizeOf() != 8 {
		t.Error("double sizeof should be 8")
	}
}

func TestTypeofTag(t *testing.T) {
	cases := []struct {
		v    *Value
		want string
	}{
		{Null(), "undefined"},
		{Bool(true), "boolean"},
		{Int32(1), "number"},
		{Double(1), "number"},
		{String("x"), "string"},
		{Struct(nil), "object"},
	}
	for _, c := range cases {
		if got := c.v.TypeofTag(); got != c.want {
			t.Errorf("TypeofTag() = %q, want %q", got, c.want)
		}
	}
}
