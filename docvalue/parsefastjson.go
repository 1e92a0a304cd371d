package docvalue

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/valyala/fastjson"
)

// ParseJSON decodes one JSON document into a Document. Single-key objects
// using extended-JSON wrappers ($oid, $date, $numberDecimal, ...) decode to
// their richer kinds; plain scalars map to string/int/double/bool/null.
func ParseJSON(b []byte) (Document, error) {
	v, err := fastjson.ParseBytes(b)
	if err != nil {
		return Document{}, err
	}
	return ParseJSONValue(v)
}

func ParseJSONValue(v *fastjson.Value) (Document, error) {
	if v.Type() != fastjson.TypeObject {
		return Document{}, fmt.Errorf("top level value is %s, want object", v.Type())
	}
	o, err := v.Object()
	if err != nil {
		return Document{}, err
	}

	val, err := parseFastJsonObject(o)
	if err != nil {
		return Document{}, err
	}
	if val.Kind() != KindDocument {
		// extended-JSON wrapper at the top level, e.g. {"$oid": ...}
		return Document{}, fmt.Errorf("top level value is %s, want document", val.TypeLabel())
	}
	return val.AsDocument(), nil
}

func parseFastJsonValue(v *fastjson.Value) (Value, error) {
	switch v.Type() {
	case fastjson.TypeObject:
		o, err := v.Object()
		if err != nil {
			return Value{}, err
		}
		return parseFastJsonObject(o)
	case fastjson.TypeArray:
		a, err := v.Array()
		if err != nil {
			return Value{}, err
		}
		return parseFastJsonArray(a)
	case fastjson.TypeString:
		sb, err := v.StringBytes()
		if err != nil {
			return Value{}, err
		}
		return String(string(sb)), nil
	case fastjson.TypeNumber:
		return parseFastJsonNumber(v)
	case fastjson.TypeTrue:
		return Boolean(true), nil
	case fastjson.TypeFalse:
		return Boolean(false), nil
	case fastjson.TypeNull:
		return Null(), nil
	}

	panic("should be unreachable")
}

func parseFastJsonObject(o *fastjson.Object) (Value, error) {
	if v, ok, err := parseExtendedJson(o); ok || err != nil {
		return v, err
	}

	var d Document
	var visitErr error
	o.Visit(func(key []byte, v *fastjson.Value) {
		if visitErr != nil {
			return
		}
		child, childErr := parseFastJsonValue(v)
		if childErr != nil {
			visitErr = childErr
			return
		}
		d.Add(string(key), child)
	})
	if visitErr != nil {
		return Value{}, visitErr
	}

	return Doc(d), nil
}

func parseFastJsonArray(vs []*fastjson.Value) (Value, error) {
	elems := make([]Value, 0, len(vs))
	for _, v := range vs {
		e, err := parseFastJsonValue(v)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, e)
	}
	return List(elems...), nil
}

func parseFastJsonNumber(v *fastjson.Value) (Value, error) {
	if n, err := v.Int64(); err == nil {
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return Int32(int32(n)), nil
		}
		return Int64(n), nil
	}
	f, err := v.Float64()
	if err != nil {
		return Value{}, err
	}
	return Double(f), nil
}

// parseExtendedJson recognizes the MongoDB extended-JSON wrapper objects and
// returns the scalar they denote. ok is false when o is an ordinary object.
func parseExtendedJson(o *fastjson.Object) (Value, bool, error) {
	var key string
	var inner *fastjson.Value
	n := 0
	o.Visit(func(k []byte, v *fastjson.Value) {
		n++
		if n == 1 {
			key = string(k)
			inner = v
		}
	})
	if inner == nil || len(key) == 0 || key[0] != '$' {
		return Value{}, false, nil
	}

	switch key {
	case "$oid":
		if n != 1 {
			return Value{}, false, nil
		}
		s, err := inner.StringBytes()
		if err != nil {
			return Value{}, true, err
		}
		return ObjectID(string(s)), true, nil

	case "$date":
		if n != 1 {
			return Value{}, false, nil
		}
		if ms := inner.GetStringBytes("$numberLong"); ms != nil {
			millis, err := strconv.ParseInt(string(ms), 10, 64)
			if err != nil {
				return Value{}, true, err
			}
			return Datetime(time.UnixMilli(millis).UTC()), true, nil
		}
		s, err := inner.StringBytes()
		if err != nil {
			return Value{}, true, err
		}
		t, err := time.Parse(time.RFC3339Nano, string(s))
		if err != nil {
			return Value{}, true, err
		}
		return Datetime(t), true, nil

	case "$numberDecimal":
		if n != 1 {
			return Value{}, false, nil
		}
		s, err := inner.StringBytes()
		if err != nil {
			return Value{}, true, err
		}
		return Decimal128(string(s)), true, nil

	case "$numberLong":
		if n != 1 {
			return Value{}, false, nil
		}
		s, err := inner.StringBytes()
		if err != nil {
			return Value{}, true, err
		}
		n, err := strconv.ParseInt(string(s), 10, 64)
		if err != nil {
			return Value{}, true, err
		}
		return Int64(n), true, nil

	case "$numberInt":
		if n != 1 {
			return Value{}, false, nil
		}
		s, err := inner.StringBytes()
		if err != nil {
			return Value{}, true, err
		}
		n, err := strconv.ParseInt(string(s), 10, 32)
		if err != nil {
			return Value{}, true, err
		}
		return Int32(int32(n)), true, nil

	case "$numberDouble":
		if n != 1 {
			return Value{}, false, nil
		}
		s, err := inner.StringBytes()
		if err != nil {
			return Value{}, true, err
		}
		f, err := strconv.ParseFloat(string(s), 64)
		if err != nil {
			return Value{}, true, err
		}
		return Double(f), true, nil

	case "$symbol":
		if n != 1 {
			return Value{}, false, nil
		}
		s, err := inner.StringBytes()
		if err != nil {
			return Value{}, true, err
		}
		return Symbol(string(s)), true, nil

	case "$code":
		s, err := inner.StringBytes()
		if err != nil {
			return Value{}, true, err
		}
		if scope := o.Get("$scope"); scope != nil {
			so, err := scope.Object()
			if err != nil {
				return Value{}, true, err
			}
			sv, err := parseFastJsonObject(so)
			if err != nil {
				return Value{}, true, err
			}
			if !sv.IsDocument() {
				return Value{}, true, fmt.Errorf("$scope is not a document")
			}
			return CodeWithScope(string(s), sv.AsDocument()), true, nil
		}
		return Code(string(s)), true, nil

	case "$regularExpression":
		if n != 1 {
			return Value{}, false, nil
		}
		p := inner.GetStringBytes("pattern")
		if p == nil {
			return Value{}, true, fmt.Errorf("$regularExpression missing pattern")
		}
		return Regex(string(p)), true, nil

	case "$binary":
		if n != 1 {
			return Value{}, false, nil
		}
		b64 := inner.GetStringBytes("base64")
		if b64 == nil {
			return Value{}, true, fmt.Errorf("$binary missing base64")
		}
		bs, err := base64.StdEncoding.DecodeString(string(b64))
		if err != nil {
			return Value{}, true, err
		}
		return Binary(bs), true, nil

	case "$timestamp":
		if n != 1 {
			return Value{}, false, nil
		}
		t := inner.GetInt64("t")
		i := inner.GetInt64("i")
		return Timestamp(t<<32 | i&0xffffffff), true, nil
	}

	// unknown $-key, treat as an ordinary object
	return Value{}, false, nil
}
