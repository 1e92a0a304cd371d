package docvalue

import (
	"bytes"
	"cmp"
	"sort"
	"strings"
)

// Compare is a total order over normalized values: kind tag first, then value
// within the kind. Cross-kind pairs always resolve, so sorting a mixed pool
// can never fail. NaN doubles order before every other double (cmp.Compare).
func Compare(a, b Normalized) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}

	switch a.kind {
	case NormalNull:
		return 0
	case NormalBoolean:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case NormalInt32:
		return cmp.Compare(a.i32, b.i32)
	case NormalInt64:
		return cmp.Compare(a.i64, b.i64)
	case NormalDouble:
		return cmp.Compare(a.f64, b.f64)
	case NormalDecimal, NormalString:
		return strings.Compare(a.str, b.str)
	case NormalBinary:
		return bytes.Compare(a.bin, b.bin)
	}

	panic("should be unreachable")
}

func Equal(a, b Normalized) bool {
	return Compare(a, b) == 0
}

// UniqueCount reports how many distinct values the pool holds. It works on a
// copy; the caller's slice keeps its observation order.
func UniqueCount(values []Normalized) int {
	if len(values) == 0 {
		return 0
	}

	vs := make([]Normalized, len(values))
	copy(vs, values)
	sort.Slice(vs, func(i, j int) bool { return Compare(vs[i], vs[j]) < 0 })

	n := 1
	for i := 1; i < len(vs); i++ {
		if Compare(vs[i], vs[i-1]) != 0 {
			n++
		}
	}
	return n
}
