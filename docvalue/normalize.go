package docvalue

import (
	"encoding/json"
	"time"
)

type NormalKind int

const (
	NormalNull    NormalKind = 1
	NormalBoolean NormalKind = 2
	NormalInt32   NormalKind = 3
	NormalInt64   NormalKind = 4
	NormalDouble  NormalKind = 5
	NormalDecimal NormalKind = 6
	NormalString  NormalKind = 7
	NormalBinary  NormalKind = 8
)

// Normalized is a scalar reduced to one of the comparable kinds above.
// String-ish kinds (regex, symbol, code, object id, datetime) collapse to
// NormalString so that e.g. a regex and an equal plain string count as one
// distinct value. Timestamps collapse to NormalInt64.
type Normalized struct {
	kind NormalKind
	str  string
	i32  int32
	i64  int64
	f64  float64
	b    bool
	bin  []byte
}

func (n Normalized) Kind() NormalKind { return n.kind }

// Normalize maps a scalar value to its normalized form. Arrays and documents
// report ok == false; they never enter the value pool directly. The mapping is
// total over every other kind.
func Normalize(v Value) (Normalized, bool) {
	switch v.kind {
	case KindString, KindSymbol, KindRegex, KindJavaScriptCode, KindJavaScriptCodeWithScope, KindObjectID:
		return Normalized{kind: NormalString, str: v.str}, true
	case KindDatetime:
		return Normalized{kind: NormalString, str: v.t.UTC().Format(time.RFC3339Nano)}, true
	case KindInt64, KindTimestamp:
		return Normalized{kind: NormalInt64, i64: v.i64}, true
	case KindInt32:
		return Normalized{kind: NormalInt32, i32: v.i32}, true
	case KindDouble:
		return Normalized{kind: NormalDouble, f64: v.f64}, true
	case KindDecimal128:
		return Normalized{kind: NormalDecimal, str: v.str}, true
	case KindBoolean:
		return Normalized{kind: NormalBoolean, b: v.b}, true
	case KindBinary:
		return Normalized{kind: NormalBinary, bin: v.bin}, true
	case KindNull:
		return Normalized{kind: NormalNull}, true
	case KindArray, KindDocument:
		return Normalized{}, false
	}

	panic("should be unreachable")
}

// NormalizeElements flattens an array's scalar elements. Nested arrays and
// documents inside the array are dropped; they do not recurse on this path.
func NormalizeElements(elems []Value) []Normalized {
	res := make([]Normalized, 0, len(elems))
	for _, e := range elems {
		if n, ok := Normalize(e); ok {
			res = append(res, n)
		}
	}
	return res
}

func (n Normalized) MarshalJSON() ([]byte, error) {
	switch n.kind {
	case NormalNull:
		return []byte("null"), nil
	case NormalBoolean:
		return json.Marshal(n.b)
	case NormalInt32:
		return json.Marshal(n.i32)
	case NormalInt64:
		return json.Marshal(n.i64)
	case NormalDouble:
		return json.Marshal(n.f64)
	case NormalDecimal, NormalString:
		return json.Marshal(n.str)
	case NormalBinary:
		return json.Marshal(n.bin)
	}

	panic("should be unreachable")
}
