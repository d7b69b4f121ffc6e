// Provides an in-memory tree of SVG elements, read from XML,
// and its conversion into vector documents.
// See svgeps, svgpdf and svgraster to render the result.
package svgdom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/synesenom/dl/svgattr"
	"golang.org/x/net/html/charset"
)

// ErrEmptyDocument is returned when the input holds no element.
var ErrEmptyDocument = errors.New("invalid svg: no element")

// inherited lists the style properties taken from the
// ancestors when not set on an element.
var inherited = map[string]bool{
	"fill":           true,
	"stroke":         true,
	"stroke-width":   true,
	"fill-opacity":   true,
	"stroke-opacity": true,
	"font-family":    true,
	"font-size":      true,
	"font-style":     true,
	"font-weight":    true,
}

// initialValues are used when no element of the
// ancestry sets a property.
var initialValues = map[string]string{
	"fill":           "black",
	"stroke":         "none",
	"stroke-width":   "1",
	"fill-opacity":   "1",
	"stroke-opacity": "1",
	"opacity":        "1",
}

// Node is an element of an SVG tree.
// It implements svgattr.Element.
type Node struct {
	name     string
	attrs    map[string]string
	style    map[string]string // declarations of the style attribute
	parent   *Node
	children []*Node
}

var _ svgattr.Element = (*Node)(nil) // assert interface conformance

func newNode(se xml.StartElement, parent *Node) *Node {
	n := &Node{name: se.Name.Local, attrs: make(map[string]string, len(se.Attr)), parent: parent}
	for _, attr := range se.Attr {
		if attr.Name.Local == "style" {
			n.style = parseStyle(attr.Value)
			continue
		}
		n.attrs[attr.Name.Local] = attr.Value
	}
	return n
}

// parseStyle splits a style attribute ("fill: red; stroke: none")
// into its declarations.
func parseStyle(v string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(v, ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(kv[0]))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(kv[1])
	}
	return out
}

func (n *Node) Name() string { return n.name }

func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// ResolvedStyle returns the declaration of the style attribute of `n`, or
// for inherited properties, the closest one found in the ancestors style
// or attributes. The initial value of the property is used as last resort.
func (n *Node) ResolvedStyle(name string) (string, bool) {
	if v, ok := n.style[name]; ok {
		return v, true
	}
	if inherited[name] {
		for p := n.parent; p != nil; p = p.parent {
			if v, ok := p.style[name]; ok {
				return v, true
			}
			if v, ok := p.attrs[name]; ok {
				return v, true
			}
		}
	}
	v, ok := initialValues[name]
	return v, ok
}

func (n *Node) Children() []svgattr.Element {
	out := make([]svgattr.Element, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Parent returns the enclosing element, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Read parses the XML in `r` and returns its root element.
// Non UTF-8 encodings declared in the prolog are supported.
func Read(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	var root, current *Node
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			n := newNode(se, current)
			if current == nil {
				if root != nil {
					return nil, errors.New("invalid svg: multiple root elements")
				}
				root = n
			} else {
				current.children = append(current.children, n)
			}
			current = n
		case xml.EndElement:
			current = current.parent
		}
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return root, nil
}

// ReadFile parses the named file. See Read.
func ReadFile(name string) (*Node, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
