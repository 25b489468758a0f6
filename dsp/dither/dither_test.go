package dither

import "testing"

func TestDitherTypeString(t *testing.T) {
	tests := []struct {
		dt   DitherType
		want string
	}{
		{DitherNone, "None"},
		{DitherRectangular, "Rectangular"},
		{DitherTriangular, "Triangular"},
		{DitherType(99), "DitherType(99)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.dt.String(); got != tt.want {
				t.Errorf("DitherType(%d).String() = %q, want %q", tt.dt, got, tt.want)
			}
		})
	}
}

func TestDitherTypeValid(t *testing.T) {
	if !DitherTriangular.Valid() {
		t.Error("DitherTriangular should be valid")
	}

	if DitherType(99).Valid() {
		t.Error("DitherType(99) should be invalid")
	}
}

func TestParseDitherType(t *testing.T) {
	tests := []struct {
		in      string
		want    DitherType
		wantErr bool
	}{
		{"", DitherNone, false},
		{"none", DitherNone, false},
		{" Triangular ", DitherTriangular, false},
		{"tpdf", DitherTriangular, false},
		{"RECTANGULAR", DitherRectangular, false},
		{"rpdf", DitherRectangular, false},
		{"gaussian", DitherNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDitherType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}

			if got != tt.want {
				t.Errorf("ParseDitherType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
