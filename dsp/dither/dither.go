package dither

import (
	"fmt"
	"strings"
)

// DitherType selects the probability distribution used for dither noise.
type DitherType int

const (
	// DitherNone applies no dither (plain rounding).
	DitherNone DitherType = iota
	// DitherRectangular uses a uniform (rectangular) PDF.
	DitherRectangular
	// DitherTriangular uses a triangular PDF (TPDF).
	DitherTriangular

	ditherTypeCount // sentinel for validation
)

var ditherTypeNames = [ditherTypeCount]string{
	"None", "Rectangular", "Triangular",
}

// String returns the name of the dither type.
func (dt DitherType) String() string {
	if dt >= 0 && dt < ditherTypeCount {
		return ditherTypeNames[dt]
	}

	return fmt.Sprintf("DitherType(%d)", dt)
}

// Valid reports whether dt is a known dither type.
func (dt DitherType) Valid() bool {
	return dt >= 0 && dt < ditherTypeCount
}

// ParseDitherType resolves a case-insensitive dither name. The empty string
// maps to [DitherNone].
func ParseDitherType(s string) (DitherType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DitherNone, nil
	}

	for i, name := range ditherTypeNames {
		if strings.EqualFold(s, name) {
			return DitherType(i), nil
		}
	}

	switch strings.ToLower(s) {
	case "rpdf":
		return DitherRectangular, nil
	case "tpdf":
		return DitherTriangular, nil
	}

	return DitherNone, fmt.Errorf("dither: unknown dither type: %q", s)
}
