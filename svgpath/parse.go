package svgpath

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrUnsupportedCommand is returned for path commands outside
	// of the moveto and lineto families (curves, arcs and close).
	ErrUnsupportedCommand = errors.New("unsupported path command")
	// ErrBadNumber is returned for malformed numeric tokens.
	ErrBadNumber = errors.New("malformed number")
	// ErrMissingNumber is returned when a command lacks some of its arguments.
	ErrMissingNumber = errors.New("missing number")
	// ErrNoMoveTo is returned when a path does not start with a moveto.
	ErrNoMoveTo = errors.New("path must start with a moveto")
	// ErrBadTransform is returned for unknown or badly formed transform operations.
	ErrBadTransform = errors.New("malformed transform")
)

// ParseError describes a failure to parse a path,
// a point list or a transform string.
type ParseError struct {
	Input  string // the whole string being parsed
	Offset int    // byte offset of the offending token
	Op     string // command letter or transform name, if any
	Err    error  // one of the ErrXXX values
}

func (e *ParseError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("svgpath: %q at offset %d (%s): %v", e.Input, e.Offset, e.Op, e.Err)
	}
	return fmt.Sprintf("svgpath: %q at offset %d: %v", e.Input, e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// lexer splits the input into command letters and numbers.
type lexer struct {
	src string
	pos int
}

func isSeparator(b byte) bool {
	switch b {
	case ',', ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func (l *lexer) skipSeparators() {
	for l.pos < len(l.src) && isSeparator(l.src[l.pos]) {
		l.pos++
	}
}

func (l *lexer) done() bool { return l.pos >= len(l.src) }

// errNoNumber signals that the next token is not a number.
var errNoNumber = errors.New("no number")

// readNumber scans one number, starting at the current position.
// It accepts an optional sign, digits with an optional decimal point
// and an optional exponent. Consecutive numbers need no separator
// when the second starts with a sign or a point ("1-2", "0.5.5").
func (l *lexer) readNumber() (float64, error) {
	start, i := l.pos, l.pos
	if i < len(l.src) && (l.src[i] == '+' || l.src[i] == '-') {
		i++
	}
	digits := 0
	for i < len(l.src) && isDigit(l.src[i]) {
		i++
		digits++
	}
	if i < len(l.src) && l.src[i] == '.' {
		i++
		for i < len(l.src) && isDigit(l.src[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		if i == start {
			return 0, errNoNumber
		}
		return 0, ErrBadNumber // lonely sign or point
	}
	if i < len(l.src) && (l.src[i] == 'e' || l.src[i] == 'E') {
		j := i + 1
		if j < len(l.src) && (l.src[j] == '+' || l.src[j] == '-') {
			j++
		}
		if j < len(l.src) && isDigit(l.src[j]) {
			for j < len(l.src) && isDigit(l.src[j]) {
				j++
			}
			i = j
		}
	}
	f, err := strconv.ParseFloat(l.src[start:i], 64)
	if err != nil {
		return 0, ErrBadNumber
	}
	l.pos = i
	return f, nil
}

// readNumbers reads numbers until the next non numeric token.
func (l *lexer) readNumbers() ([]float64, error) {
	var out []float64
	for {
		l.skipSeparators()
		f, err := l.readNumber()
		if err == errNoNumber {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
}

// ReadNumber parses the number at the start of `s`, ignoring
// leading white space. It returns the number of bytes consumed.
// Trailing content, such as a unit suffix, is left untouched.
func ReadNumber(s string) (float64, int, error) {
	l := lexer{src: s}
	for !l.done() && isSeparator(l.src[l.pos]) && l.src[l.pos] != ',' {
		l.pos++
	}
	f, err := l.readNumber()
	if err == errNoNumber {
		err = ErrBadNumber
	}
	if err != nil {
		return 0, 0, err
	}
	return f, l.pos, nil
}

// parseNumbers parses a list of numbers separated
// by commas or white spaces.
func parseNumbers(s string) ([]float64, error) {
	l := lexer{src: s}
	nums, err := l.readNumbers()
	if err == nil {
		l.skipSeparators()
		if !l.done() {
			err = ErrBadNumber
		}
	}
	if err != nil {
		return nil, &ParseError{Input: s, Offset: l.pos, Err: err}
	}
	return nums, nil
}

// ParsePoints parses a point list, as found in the `points`
// attribute of polygons and polylines: "x1,y1 x2,y2 ...".
// An empty string yields an empty list.
func ParsePoints(s string) ([]Point, error) {
	nums, err := parseNumbers(s)
	if err != nil {
		return nil, err
	}
	if len(nums)%2 != 0 {
		return nil, &ParseError{Input: s, Offset: len(s), Err: ErrMissingNumber}
	}
	points := make([]Point, len(nums)/2)
	for i := range points {
		points[i] = Point{nums[2*i], nums[2*i+1]}
	}
	return points, nil
}

// pathCursor holds the state of the path state machine.
type pathCursor struct {
	lexer
	pen     Point
	out     Subpaths
	current int // index of the current subpath in out, -1 before the first moveto
}

func isPathCommand(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v':
		return true
	}
	return false
}

func isUnsupportedCommand(b byte) bool {
	switch b {
	case 'Z', 'z', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
		return true
	}
	return false
}

// Parse interprets a path description, made of moveto (M, m)
// and lineto (L, l, H, h, V, v) commands, into absolute
// subpaths. The pen starts at the origin. Each moveto starts
// a new subpath. Extra coordinates after a command repeat it,
// those after a moveto being treated as linetos.
// An empty description returns an empty list.
func Parse(d string) (Subpaths, error) {
	c := pathCursor{lexer: lexer{src: d}, current: -1}
	for {
		c.skipSeparators()
		if c.done() {
			break
		}
		start := c.pos
		cmd := c.src[c.pos]
		if !isPathCommand(cmd) {
			err := ErrBadNumber
			if isUnsupportedCommand(cmd) {
				err = ErrUnsupportedCommand
			} else if _, errN := c.readNumber(); errN == nil && c.current == -1 {
				err = ErrNoMoveTo
			}
			return nil, &ParseError{Input: d, Offset: start, Op: string(cmd), Err: err}
		}
		c.pos++
		nums, err := c.readNumbers()
		if err != nil {
			return nil, &ParseError{Input: d, Offset: c.pos, Op: string(cmd), Err: err}
		}
		if err = c.apply(cmd, nums); err != nil {
			return nil, &ParseError{Input: d, Offset: start, Op: string(cmd), Err: err}
		}
	}
	return c.out, nil
}

func (c *pathCursor) apply(cmd byte, nums []float64) error {
	arity := 2
	if cmd == 'H' || cmd == 'h' || cmd == 'V' || cmd == 'v' {
		arity = 1
	}
	if len(nums) == 0 || len(nums)%arity != 0 {
		return ErrMissingNumber
	}
	relative := 'a' <= cmd && cmd <= 'z'
	for i := 0; i < len(nums); i += arity {
		switch cmd {
		case 'M', 'm', 'L', 'l':
			p := Point{nums[i], nums[i+1]}
			if relative {
				p = c.pen.Add(p)
			}
			c.pen = p
			if (cmd == 'M' || cmd == 'm') && i == 0 {
				c.moveTo()
				continue
			}
		case 'H':
			c.pen.X = nums[i]
		case 'h':
			c.pen.X += nums[i]
		case 'V':
			c.pen.Y = nums[i]
		case 'v':
			c.pen.Y += nums[i]
		}
		if err := c.lineTo(); err != nil {
			return err
		}
	}
	return nil
}

func (c *pathCursor) moveTo() {
	c.out = append(c.out, Subpath{c.pen})
	c.current = len(c.out) - 1
}

func (c *pathCursor) lineTo() error {
	if c.current == -1 {
		return ErrNoMoveTo
	}
	c.out[c.current] = append(c.out[c.current], c.pen)
	return nil
}
