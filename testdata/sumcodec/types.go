package sumcodec

import "fmt"

// Color is encoded by name.
//
//enumkeys:codec as_ref
type Color int

const (
	Red Color = iota
	Green
)

var colorNames = []string{"red", "green"}

func (c Color) String() string { return colorNames[c] }

func (c Color) AppendText(b []byte) ([]byte, error) {
	return append(b, colorNames[c]...), nil
}

// ParseColor parses a color name.
func ParseColor(s string) (Color, error) {
	for i, name := range colorNames {
		if name == s {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color %q", s)
}

// Shape is a closed set of shapes.
//
//enumkeys:keys name=ShapeKind, common, strings, rename=snake
type Shape interface {
	isShape()
}

type Circle struct{ Radius float64 }

func (Circle) isShape() {}

type RoundedSquare struct{ Side, Radius float64 }

func (RoundedSquare) isShape() {}
