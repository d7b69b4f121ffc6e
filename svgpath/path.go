// Implements the geometry of svg shapes:
// points, subpaths, the path mini-language and
// the affine transforms which position them.
// The resulting values can then be consumed
// by a document model.
package svgpath

import (
	"fmt"
	"math"
	"strings"
)

// Point is a plain 2D coordinate.
type Point struct {
	X, Y float64
}

// Valid returns true when both coordinates are finite numbers.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Add returns the point translated by `d`.
func (p Point) Add(d Point) Point { return Point{p.X + d.X, p.Y + d.Y} }

// Subpath is an ordered sequence of points, started
// by a moveto command. It is never empty when returned
// by Parse.
type Subpath []Point

// Subpaths is a list of subpaths, in textual command order.
type Subpaths []Subpath

// Len returns the total number of points, across all subpaths.
func (ps Subpaths) Len() int {
	n := 0
	for _, s := range ps {
		n += len(s)
	}
	return n
}

// ToSVGPath returns a string representation of the subpaths,
// using absolute commands only.
func (ps Subpaths) ToSVGPath() string {
	var chunks []string
	for _, s := range ps {
		for i, p := range s {
			cmd := 'L'
			if i == 0 {
				cmd = 'M'
			}
			chunks = append(chunks, fmt.Sprintf("%c%g,%g", cmd, p.X, p.Y))
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of the subpaths.
func (ps Subpaths) String() string {
	return ps.ToSVGPath()
}

// Transform returns a copy of the subpaths, with `m` applied to every point.
func (ps Subpaths) Transform(m Matrix2D) Subpaths {
	out := make(Subpaths, len(ps))
	for i, s := range ps {
		out[i] = make(Subpath, len(s))
		for j, p := range s {
			out[i][j] = m.Apply(p)
		}
	}
	return out
}
