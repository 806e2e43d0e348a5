// Copyright 2024 The lifsim authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package lifsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Connection links a part's pin PP to one or more pins CP in its host
// chip.
type Connection struct {
	PP string
	CP []string
}

// BusPinName returns the name of pin i of bus b.
func BusPinName(b string, i int) string {
	return b + "[" + strconv.Itoa(i) + "]"
}

// IO expands an i/o specification string to a slice of individual pin names.
// It panics if the specification is malformed.
//
//	IO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
func IO(spec string) []string {
	pins, err := ParseIOSpec(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// ParseIOSpec parses a comma separated list of pin or bus declarations and
// returns the individual pin names. A bus declaration "name[n]" expands to n
// pins "name[0]" through "name[n-1]".
func ParseIOSpec(spec string) ([]string, error) {
	sc := &scanner{s: spec}
	var out []string
	if sc.eof() {
		return nil, nil
	}
	for {
		name, err := sc.ident()
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", spec)
		}
		if sc.accept('[') {
			n, err := sc.int()
			if err != nil {
				return nil, errors.Wrapf(err, "in %q: bus size for %s", spec, name)
			}
			if !sc.accept(']') {
				return nil, errors.Errorf("in %q: missing close bracket after bus size", spec)
			}
			if n < 1 {
				return nil, errors.Errorf("in %q: invalid bus size %d", spec, n)
			}
			for i := 0; i < n; i++ {
				out = append(out, BusPinName(name, i))
			}
		} else {
			out = append(out, name)
		}
		if sc.eof() {
			return out, nil
		}
		if !sc.accept(',') {
			return nil, errors.Errorf("in %q: expected comma or end of input at pos %d", spec, sc.pos)
		}
	}
}

// ParseConnections parses a connection configuration string.
//
// Each connection binds a part pin (left hand side) to one or more chip pins
// (right hand side). Pins are single names, indexed bus pins "b[i]" or bus
// ranges "b[i..j]":
//
//	"a=x, b=y, out[0..3]=s[4..7]"
//
// A range on both sides pairs pins one to one; a single part pin bound to a
// range fans out to every chip pin in the range; a range bound to a single
// chip pin connects every part pin to that same chip pin.
func ParseConnections(c string) ([]Connection, error) {
	sc := &scanner{s: c}
	var conns []Connection
	if sc.eof() {
		return nil, nil
	}
	for {
		lhs, err := sc.pinExpr()
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", c)
		}
		if !sc.accept('=') {
			return nil, errors.Errorf("in %q: expected = at pos %d", c, sc.pos)
		}
		rhs, err := sc.pinExpr()
		if err != nil {
			return nil, errors.Wrapf(err, "in %q", c)
		}
		switch {
		case len(lhs) == len(rhs):
			for i := range lhs {
				conns = append(conns, Connection{PP: lhs[i], CP: []string{rhs[i]}})
			}
		case len(lhs) == 1:
			conns = append(conns, Connection{PP: lhs[0], CP: rhs})
		case len(rhs) == 1:
			for _, l := range lhs {
				conns = append(conns, Connection{PP: l, CP: []string{rhs[0]}})
			}
		default:
			return nil, errors.Errorf("in %q: pin count mismatch (%d vs. %d)", c, len(lhs), len(rhs))
		}
		if sc.eof() {
			return conns, nil
		}
		if !sc.accept(',') {
			return nil, errors.Errorf("in %q: expected comma or end of input at pos %d", c, sc.pos)
		}
	}
}

// scanner is a minimal tokenizer shared by the i/o spec and connection
// string parsers.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.s) {
		if b := sc.s[sc.pos]; b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return
		}
		sc.pos++
	}
}

func (sc *scanner) eof() bool {
	sc.skipSpace()
	return sc.pos >= len(sc.s)
}

// accept consumes b if it is the next non-space byte.
func (sc *scanner) accept(b byte) bool {
	sc.skipSpace()
	if sc.pos < len(sc.s) && sc.s[sc.pos] == b {
		sc.pos++
		return true
	}
	return false
}

func isIdentRune(b byte, first bool) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
		return true
	case b >= '0' && b <= '9':
		return !first
	}
	return false
}

func (sc *scanner) ident() (string, error) {
	sc.skipSpace()
	start := sc.pos
	for sc.pos < len(sc.s) && isIdentRune(sc.s[sc.pos], sc.pos == start) {
		sc.pos++
	}
	if sc.pos == start {
		return "", errors.Errorf("expected pin name at pos %d", sc.pos)
	}
	return sc.s[start:sc.pos], nil
}

func (sc *scanner) int() (int, error) {
	sc.skipSpace()
	start := sc.pos
	for sc.pos < len(sc.s) && sc.s[sc.pos] >= '0' && sc.s[sc.pos] <= '9' {
		sc.pos++
	}
	if sc.pos == start {
		return 0, errors.Errorf("expected number at pos %d", sc.pos)
	}
	return strconv.Atoi(sc.s[start:sc.pos])
}

// pinExpr parses "name", "name[i]" or "name[i..j]" and returns the expanded
// pin name list.
func (sc *scanner) pinExpr() ([]string, error) {
	name, err := sc.ident()
	if err != nil {
		return nil, err
	}
	if !sc.accept('[') {
		return []string{name}, nil
	}
	lo, err := sc.int()
	if err != nil {
		return nil, err
	}
	hi := lo
	if sc.accept('.') {
		if !sc.accept('.') {
			return nil, errors.Errorf("expected .. in bus range at pos %d", sc.pos)
		}
		if hi, err = sc.int(); err != nil {
			return nil, err
		}
	}
	if !sc.accept(']') {
		return nil, errors.Errorf("missing close bracket in bus range at pos %d", sc.pos)
	}
	if hi < lo {
		return nil, errors.Errorf("invalid bus range [%d..%d]", lo, hi)
	}
	pins := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		pins = append(pins, BusPinName(name, i))
	}
	return pins, nil
}
