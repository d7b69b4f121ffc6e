// Resolves geometry and style values from svg elements,
// preferring explicit attributes over inherited styles.
package svgattr

import (
	"errors"
	"fmt"

	"github.com/synesenom/dl/svgpath"
)

// ErrNotANumber is returned when a resolved value
// does not start with a number.
var ErrNotANumber = errors.New("not a number")

// Element gives read only access to a node of a markup tree.
type Element interface {
	// Name is the local tag name, such as "circle".
	Name() string
	// Attribute returns the explicit attribute `name`, if present.
	Attribute(name string) (string, bool)
	// ResolvedStyle returns the computed style property `name`,
	// taking inheritance into account.
	ResolvedStyle(name string) (string, bool)
	// Children returns the child elements, in document order.
	Children() []Element
}

// resolve returns the attribute, then the style, if not empty.
func resolve(e Element, name string) (string, bool) {
	if v, ok := e.Attribute(name); ok && v != "" {
		return v, true
	}
	if v, ok := e.ResolvedStyle(name); ok && v != "" {
		return v, true
	}
	return "", false
}

// GetString returns the non empty attribute `name` of `e`, or else its non empty
// resolved style, or else `def`.
func GetString(e Element, name, def string) string {
	if v, ok := resolve(e, name); ok {
		return v
	}
	return def
}

// GetNumber resolves `name` like GetString and returns the leading
// number of the value, ignoring any unit suffix ("12px" is 12).
// `def` is returned when nothing resolves; a value which
// does not start with a number is an error.
func GetNumber(e Element, name string, def float64) (float64, error) {
	v, ok := resolve(e, name)
	if !ok {
		return def, nil
	}
	f, _, err := svgpath.ReadNumber(v)
	if err != nil {
		return def, fmt.Errorf("attribute %s=%q of <%s>: %w", name, v, e.Name(), ErrNotANumber)
	}
	return f, nil
}
