// Package clvm decodes serialized on-chain programs and inspects their
// structure. It does not run them.
package clvm

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/AlexZinkM/dig-wallet/internal/chain"
	"github.com/AlexZinkM/dig-wallet/internal/puzzle"
)

const (
	consBox    = 0xff
	nilAtom    = 0x80
	maxSizeLen = 5

	opQuote = 0x01
	opApply = 0x02
	opCons  = 0x04
)

var (
	ErrTrailingBytes = errors.New("trailing bytes after program")
	ErrTruncated     = errors.New("program is truncated")
)

// Program is an atom or a pair.
type Program struct {
	atom  []byte
	first *Program
	rest  *Program
}

// Nil is the empty atom.
var Nil = &Program{atom: []byte{}}

// Atom wraps bytes.
func Atom(b []byte) *Program {
	return &Program{atom: append([]byte{}, b...)}
}

// Pair builds a cons cell.
func Pair(first, rest *Program) *Program {
	return &Program{first: first, rest: rest}
}

// List builds a proper nil-terminated list.
func List(items ...*Program) *Program {
	out := Nil
	for i := len(items) - 1; i >= 0; i-- {
		out = Pair(items[i], out)
	}
	return out
}

// Uint builds the minimal atom for v.
func Uint(v uint64) *Program {
	return Atom(chain.EncodeAmount(v))
}

func (p *Program) IsPair() bool {
	return p.first != nil
}

// AtomBytes returns the atom's bytes, or nil for a pair.
func (p *Program) AtomBytes() []byte {
	if p.IsPair() {
		return nil
	}
	return p.atom
}

func (p *Program) First() *Program {
	return p.first
}

func (p *Program) Rest() *Program {
	return p.rest
}

func (p *Program) isAtom(b ...byte) bool {
	return !p.IsPair() && bytes.Equal(p.atom, b)
}

// Items returns the elements of a proper list. ok is false when p is not a
// nil-terminated list.
func (p *Program) Items() (items []*Program, ok bool) {
	for cur := p; ; cur = cur.rest {
		if !cur.IsPair() {
			return items, len(cur.atom) == 0
		}
		items = append(items, cur.first)
	}
}

// Uint64 decodes an atom as a non-negative integer.
func (p *Program) Uint64() (uint64, error) {
	if p.IsPair() {
		return 0, errors.New("expected atom, got pair")
	}
	b := p.atom
	if len(b) > 0 && b[0]&0x80 != 0 {
		return 0, errors.New("integer is negative")
	}
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, errors.New("integer overflows uint64")
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

// Bytes32 decodes a 32-byte atom.
func (p *Program) Bytes32() (chain.Bytes32, error) {
	var out chain.Bytes32
	if p.IsPair() || len(p.atom) != len(out) {
		return out, errors.New("expected 32-byte atom")
	}
	copy(out[:], p.atom)
	return out, nil
}

// TreeHash computes the program's tree hash without recursion, so deeply
// nested input cannot exhaust the stack.
func (p *Program) TreeHash() chain.Bytes32 {
	type item struct {
		p       *Program
		visited bool
	}
	stack := []item{{p: p}}
	var hashes []chain.Bytes32

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case !it.p.IsPair():
			hashes = append(hashes, puzzle.HashAtom(it.p.atom))
		case it.visited:
			right := hashes[len(hashes)-1]
			left := hashes[len(hashes)-2]
			hashes = append(hashes[:len(hashes)-2], puzzle.HashPair(left, right))
		default:
			stack = append(stack, item{p: it.p, visited: true}, item{p: it.p.rest}, item{p: it.p.first})
		}
	}
	return hashes[0]
}

// Curry applies arguments to mod the way on-chain currying does:
// (a (q . mod) (c (q . arg1) (c (q . arg2) ... 1))).
func Curry(mod *Program, args ...*Program) *Program {
	env := Atom([]byte{opQuote})
	for i := len(args) - 1; i >= 0; i-- {
		env = List(Atom([]byte{opCons}), Pair(Atom([]byte{opQuote}), args[i]), env)
	}
	return List(Atom([]byte{opApply}), Pair(Atom([]byte{opQuote}), mod), env)
}

// Uncurry reverses Curry. ok is false when p does not have the curried shape.
func (p *Program) Uncurry() (mod *Program, args []*Program, ok bool) {
	items, ok := p.Items()
	if !ok || len(items) != 3 || !items[0].isAtom(opApply) {
		return nil, nil, false
	}
	quoted := items[1]
	if !quoted.IsPair() || !quoted.first.isAtom(opQuote) {
		return nil, nil, false
	}
	mod = quoted.rest

	for env := items[2]; !env.isAtom(opQuote); {
		parts, ok := env.Items()
		if !ok || len(parts) != 3 || !parts[0].isAtom(opCons) {
			return nil, nil, false
		}
		arg := parts[1]
		if !arg.IsPair() || !arg.first.isAtom(opQuote) {
			return nil, nil, false
		}
		args = append(args, arg.rest)
		env = parts[2]
	}
	return mod, args, true
}

func (p *Program) String() string {
	return fmt.Sprintf("%x", p.Serialize())
}
