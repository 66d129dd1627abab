package core

import "testing"

func TestVariantCoercions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		v         Variant
		wantFloat float32
		wantInt   int64
		wantBool  bool
	}{
		{"nil", Nil(), 0, 0, false},
		{"bool true", Bool(true), 1, 1, true},
		{"bool false", Bool(false), 0, 0, false},
		{"int", Int(7), 7, 7, true},
		{"int zero", Int(0), 0, 0, false},
		{"float", Float(3.5), 3.5, 3, true},
		{"vec2", MakeVec2(2.5, 9.0), 2.5, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.ToFloat(); got != tt.wantFloat {
				t.Errorf("ToFloat() = %v, want %v", got, tt.wantFloat)
			}
			if got := tt.v.ToInt(); got != tt.wantInt {
				t.Errorf("ToInt() = %v, want %v", got, tt.wantInt)
			}
			if got := tt.v.ToBool(); got != tt.wantBool {
				t.Errorf("ToBool() = %v, want %v", got, tt.wantBool)
			}
		})
	}
}

func TestVariantEqual(t *testing.T) {
	t.Parallel()
	if !Int(5).Equal(Int(5)) {
		t.Error("Int(5) should equal Int(5)")
	}
	if Int(5).Equal(Float(5)) {
		t.Error("Int(5) should not equal Float(5), different kinds")
	}
	if !Nil().Equal(Nil()) {
		t.Error("Nil() should equal Nil()")
	}
	if !MakeVec2(1, 2).Equal(MakeVec2(1, 2)) {
		t.Error("equal vec2s should be Equal")
	}
	if MakeVec2(1, 2).Equal(MakeVec2(1, 3)) {
		t.Error("differing vec2s should not be Equal")
	}
}

func TestVariantString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		v    Variant
		want string
	}{
		{Nil(), "nil"},
		{Bool(true), "true"},
		{Int(42), "42"},
		{Float(1.5), "1.5"},
		{MakeVec2(1, 2), "(1, 2)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestVariantIsNil(t *testing.T) {
	t.Parallel()
	if !Nil().IsNil() {
		t.Error("Nil() should report IsNil")
	}
	if Int(0).IsNil() {
		t.Error("Int(0) should not report IsNil")
	}
}
