package rtype

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Type
		want bool
	}{
		{"int/int", Int{}, Int{}, true},
		{"int/bool", Int{}, Boolean{}, false},
		{"bytes/bytes", ByteVector{}, ByteVector{}, true},
		{"option-int/option-int", Option{Inner: Int{}}, Option{Inner: Int{}}, true},
		{"option-int/option-bool", Option{Inner: Int{}}, Option{Inner: Boolean{}}, false},
		{"option-nothing/option-nothing", Option{}, Option{}, true},
		{"option-nothing/option-int", Option{}, Option{Inner: Int{}}, false},
		{"option/non-option", Option{Inner: Int{}}, Int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestUnify(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Type
		wantType Type
		wantOK   bool
	}{
		{"int/int", Int{}, Int{}, Int{}, true},
		{"int/bool", Int{}, Boolean{}, nil, false},
		{
			"nothing/option-int",
			Option{Inner: nil}, Option{Inner: Int{}},
			Option{Inner: Int{}}, true,
		},
		{
			"option-int/nothing",
			Option{Inner: Int{}}, Option{Inner: nil},
			Option{Inner: Int{}}, true,
		},
		{
			"nothing/nothing",
			Option{Inner: nil}, Option{Inner: nil},
			Option{Inner: nil}, true,
		},
		{
			"option-int/option-bool",
			Option{Inner: Int{}}, Option{Inner: Boolean{}},
			nil, false,
		},
		{
			"option-option-nothing/option-option-int",
			Option{Inner: Option{Inner: nil}}, Option{Inner: Option{Inner: Int{}}},
			Option{Inner: Option{Inner: Int{}}}, true,
		},
		{"option/plain", Option{Inner: Int{}}, Int{}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unify(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("Unify(%s, %s) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && !Equal(got, tt.wantType) {
				t.Errorf("Unify(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.wantType)
			}
		})
	}
}
