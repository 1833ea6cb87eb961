package clvm

import (
	"fmt"
)

// Deserialize decodes the canonical byte serialization. The whole input must
// be consumed.
func Deserialize(b []byte) (*Program, error) {
	const (
		opParse = iota
		opBuildPair
	)

	pos := 0
	ops := []int{opParse}
	var values []*Program

	for len(ops) > 0 {
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]

		if op == opBuildPair {
			rest := values[len(values)-1]
			first := values[len(values)-2]
			values = append(values[:len(values)-2], Pair(first, rest))
			continue
		}

		if pos >= len(b) {
			return nil, ErrTruncated
		}
		c := b[pos]
		pos++

		if c == consBox {
			ops = append(ops, opBuildPair, opParse, opParse)
			continue
		}

		atom, n, err := readAtom(c, b[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		values = append(values, &Program{atom: atom})
	}

	if pos != len(b) {
		return nil, ErrTrailingBytes
	}
	return values[0], nil
}

// readAtom decodes the atom introduced by prefix c, returning the atom and
// the number of bytes consumed from rest.
func readAtom(c byte, rest []byte) ([]byte, int, error) {
	if c == nilAtom {
		return []byte{}, 0, nil
	}
	if c <= 0x7f {
		return []byte{c}, 0, nil
	}

	// the count of leading one bits is the length of the size prefix
	sizeLen := 0
	mask := byte(0x80)
	for c&mask != 0 {
		sizeLen++
		c &^= mask
		mask >>= 1
	}
	if sizeLen > maxSizeLen {
		return nil, 0, fmt.Errorf("invalid atom size prefix length %d", sizeLen)
	}
	if len(rest) < sizeLen-1 {
		return nil, 0, ErrTruncated
	}

	size := uint64(c)
	for _, x := range rest[:sizeLen-1] {
		size = size<<8 | uint64(x)
	}
	consumed := sizeLen - 1
	if uint64(len(rest)-consumed) < size {
		return nil, 0, ErrTruncated
	}
	end := consumed + int(size)
	return append([]byte{}, rest[consumed:end]...), end, nil
}

// Serialize encodes the program canonically.
func (p *Program) Serialize() []byte {
	var out []byte
	stack := []*Program{p}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.IsPair() {
			out = append(out, consBox)
			stack = append(stack, cur.rest, cur.first)
			continue
		}
		out = appendAtom(out, cur.atom)
	}
	return out
}

func appendAtom(out, atom []byte) []byte {
	n := len(atom)
	switch {
	case n == 0:
		return append(out, nilAtom)
	case n == 1 && atom[0] <= 0x7f:
		return append(out, atom[0])
	case n < 0x40:
		out = append(out, 0x80|byte(n))
	case n < 0x2000:
		out = append(out, 0xc0|byte(n>>8), byte(n))
	case n < 0x100000:
		out = append(out, 0xe0|byte(n>>16), byte(n>>8), byte(n))
	case n < 0x8000000:
		out = append(out, 0xf0|byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	default:
		out = append(out, 0xf8|byte(uint64(n)>>32), byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
	return append(out, atom...)
}
