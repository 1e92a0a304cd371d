// Package docvalue models decoded document values as a closed set of kinds and
// reduces scalar observations to a small pool of comparable normalized values.
package docvalue

import "time"

type Kind int

const (
	KindDouble                  Kind = 1
	KindString                  Kind = 2
	KindDocument                Kind = 3
	KindArray                   Kind = 4
	KindBinary                  Kind = 5
	KindObjectID                Kind = 6
	KindBoolean                 Kind = 7
	KindDatetime                Kind = 8
	KindNull                    Kind = 9
	KindRegex                   Kind = 10
	KindJavaScriptCode          Kind = 11
	KindSymbol                  Kind = 12
	KindJavaScriptCodeWithScope Kind = 13
	KindInt32                   Kind = 14
	KindTimestamp               Kind = 15
	KindInt64                   Kind = 16
	KindDecimal128              Kind = 17
)

// Type labels attached to field records. These are the names external
// consumers see, so they stay stable even if the Kind enum moves around.
const (
	LabelDouble                  = "Double"
	LabelString                  = "String"
	LabelDocument                = "Document"
	LabelArray                   = "Array"
	LabelBinary                  = "BinData"
	LabelObjectID                = "ObjectId"
	LabelBoolean                 = "Boolean"
	LabelDatetime                = "UtcDatetime"
	LabelNull                    = "Null"
	LabelRegex                   = "Regex"
	LabelJavaScriptCode          = "JavaScriptCode"
	LabelSymbol                  = "Symbol"
	LabelJavaScriptCodeWithScope = "JavaScriptCodeWithScope"
	LabelInt32                   = "Int"
	LabelTimestamp               = "Timestamp"
	LabelInt64                   = "Long"
	LabelDecimal128              = "Decimal128"
)

// Value is one decoded document value. The kind set is closed; anything a
// decoder produces maps to exactly one of the kinds above.
type Value struct {
	kind Kind
	str  string
	i32  int32
	i64  int64
	f64  float64
	b    bool
	bin  []byte
	t    time.Time
	arr  []Value
	doc  *Document
}

// Document is an ordered keyed container of values. Field order is whatever
// the decoder saw; nothing here reorders it.
type Document struct {
	Fields []DocField
}

type DocField struct {
	Key   string
	Value Value
}

func (d *Document) Add(key string, v Value) {
	d.Fields = append(d.Fields, DocField{Key: key, Value: v})
}

func Double(f float64) Value       { return Value{kind: KindDouble, f64: f} }
func String(s string) Value        { return Value{kind: KindString, str: s} }
func Binary(bs []byte) Value       { return Value{kind: KindBinary, bin: bs} }
func ObjectID(hex string) Value    { return Value{kind: KindObjectID, str: hex} }
func Boolean(b bool) Value         { return Value{kind: KindBoolean, b: b} }
func Datetime(t time.Time) Value   { return Value{kind: KindDatetime, t: t} }
func Null() Value                  { return Value{kind: KindNull} }
func Regex(pattern string) Value   { return Value{kind: KindRegex, str: pattern} }
func Code(js string) Value         { return Value{kind: KindJavaScriptCode, str: js} }
func Symbol(s string) Value        { return Value{kind: KindSymbol, str: s} }
func Int32(n int32) Value          { return Value{kind: KindInt32, i32: n} }
func Timestamp(n int64) Value      { return Value{kind: KindTimestamp, i64: n} }
func Int64(n int64) Value          { return Value{kind: KindInt64, i64: n} }
func Decimal128(repr string) Value { return Value{kind: KindDecimal128, str: repr} }
func List(elems ...Value) Value    { return Value{kind: KindArray, arr: elems} }
func Doc(d Document) Value         { return Value{kind: KindDocument, doc: &d} }

// CodeWithScope keeps only the code for the value pool; the scope document is
// not part of field statistics.
func CodeWithScope(js string, scope Document) Value {
	return Value{kind: KindJavaScriptCodeWithScope, str: js, doc: &scope}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsDocument() bool { return v.kind == KindDocument }

func (v Value) IsArray() bool { return v.kind == KindArray }

func (v Value) AsDocument() Document {
	if v.kind != KindDocument {
		panic("value is not a document")
	}
	return *v.doc
}

func (v Value) AsArray() []Value {
	if v.kind != KindArray {
		panic("value is not an array")
	}
	return v.arr
}

// TypeLabel names the value's kind for field records and serialized output.
func (v Value) TypeLabel() string {
	switch v.kind {
	case KindDouble:
		return LabelDouble
	case KindString:
		return LabelString
	case KindDocument:
		return LabelDocument
	case KindArray:
		return LabelArray
	case KindBinary:
		return LabelBinary
	case KindObjectID:
		return LabelObjectID
	case KindBoolean:
		return LabelBoolean
	case KindDatetime:
		return LabelDatetime
	case KindNull:
		return LabelNull
	case KindRegex:
		return LabelRegex
	case KindJavaScriptCode:
		return LabelJavaScriptCode
	case KindSymbol:
		return LabelSymbol
	case KindJavaScriptCodeWithScope:
		return LabelJavaScriptCodeWithScope
	case KindInt32:
		return LabelInt32
	case KindTimestamp:
		return LabelTimestamp
	case KindInt64:
		return LabelInt64
	case KindDecimal128:
		return LabelDecimal128
	}

	panic("should be unreachable")
}
