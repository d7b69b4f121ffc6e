package svgpath

import (
	"math"
	"strings"
)

// AngleUnit selects how rotate and skew angles are read.
type AngleUnit uint8

const (
	// Degrees is the svg convention, and the default.
	Degrees AngleUnit = iota
	// Radians applies the trigonometric functions to
	// the angles as written.
	Radians
)

func (u AngleUnit) String() string {
	switch u {
	case Degrees:
		return "deg"
	case Radians:
		return "rad"
	default:
		return "<unknown AngleUnit>"
	}
}

// toRadians converts an angle expressed in `u`.
func (u AngleUnit) toRadians(angle float64) float64 {
	if u == Radians {
		return angle
	}
	return angle * math.Pi / 180
}

// TransformParser parses the `transform` attribute.
// Its zero value reads angles in degrees.
type TransformParser struct {
	Unit AngleUnit
}

// ParseTransform parses `v` with angles in degrees.
// See TransformParser.Parse.
func ParseTransform(v string) (Matrix2D, error) {
	return TransformParser{}.Parse(v)
}

// Parse composes the operations of `v` (matrix, translate, scale,
// rotate, skewX and skewY) into one matrix, reading them from left to
// right: net = net * op. An empty string yields Identity.
func (tp TransformParser) Parse(v string) (Matrix2D, error) {
	m1 := Identity
	offset := 0
	for _, t := range strings.SplitAfter(v, ")") {
		start := offset
		offset += len(t)
		if strings.TrimSpace(strings.Trim(t, ",")) == "" {
			continue
		}
		// a comma may separate two operations
		t = strings.TrimLeft(t, ", \t\n\r\f")
		d := strings.Split(t, "(")
		if len(d) != 2 || !strings.HasSuffix(d[1], ")") {
			return Identity, &ParseError{Input: v, Offset: start, Err: ErrBadTransform} // badly formed transformation
		}
		name := strings.ToLower(strings.TrimSpace(d[0]))
		args, err := parseNumbers(strings.TrimSuffix(d[1], ")"))
		if err != nil {
			return Identity, &ParseError{Input: v, Offset: start, Op: name, Err: ErrBadNumber}
		}
		m1, err = tp.readTransformAttr(m1, name, args)
		if err != nil {
			return Identity, &ParseError{Input: v, Offset: start, Op: name, Err: err}
		}
	}
	return m1, nil
}

func (tp TransformParser) readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(tp.Unit.toRadians(points[0]))
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(tp.Unit.toRadians(points[0])).
				Translate(-points[1], -points[2])
		} else {
			return m1, ErrMissingNumber
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, ErrMissingNumber
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(tp.Unit.toRadians(points[0]))
		} else {
			return m1, ErrMissingNumber
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(tp.Unit.toRadians(points[0]))
		} else {
			return m1, ErrMissingNumber
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, ErrMissingNumber
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, ErrMissingNumber
		}
	default:
		return m1, ErrBadTransform
	}
	return m1, nil
}
