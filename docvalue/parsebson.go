package docvalue

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ParseBSON decodes one raw BSON document into a Document. Kinds with no home
// in the value model (undefined, dbpointer, minkey, maxkey) are skipped.
func ParseBSON(b []byte) (Document, error) {
	raw := bson.Raw(b)
	if err := raw.Validate(); err != nil {
		return Document{}, err
	}
	return parseRawDocument(raw)
}

func parseRawDocument(raw bson.Raw) (Document, error) {
	elems, err := raw.Elements()
	if err != nil {
		return Document{}, err
	}

	var d Document
	for _, el := range elems {
		key, err := el.KeyErr()
		if err != nil {
			return Document{}, err
		}
		v, ok, err := parseRawValue(el.Value())
		if err != nil {
			return Document{}, err
		}
		if !ok {
			continue
		}
		d.Add(key, v)
	}
	return d, nil
}

func parseRawValue(rv bson.RawValue) (Value, bool, error) {
	switch rv.Type {
	case bsontype.Double:
		return Double(rv.Double()), true, nil
	case bsontype.String:
		return String(rv.StringValue()), true, nil
	case bsontype.EmbeddedDocument:
		d, err := parseRawDocument(rv.Document())
		if err != nil {
			return Value{}, false, err
		}
		return Doc(d), true, nil
	case bsontype.Array:
		vals, err := rv.Array().Values()
		if err != nil {
			return Value{}, false, err
		}
		elems := make([]Value, 0, len(vals))
		for _, v := range vals {
			e, ok, err := parseRawValue(v)
			if err != nil {
				return Value{}, false, err
			}
			if ok {
				elems = append(elems, e)
			}
		}
		return List(elems...), true, nil
	case bsontype.Binary:
		_, data := rv.Binary()
		return Binary(data), true, nil
	case bsontype.ObjectID:
		return ObjectID(rv.ObjectID().Hex()), true, nil
	case bsontype.Boolean:
		return Boolean(rv.Boolean()), true, nil
	case bsontype.DateTime:
		return Datetime(rv.Time().UTC()), true, nil
	case bsontype.Null:
		return Null(), true, nil
	case bsontype.Regex:
		pattern, _ := rv.Regex()
		return Regex(pattern), true, nil
	case bsontype.JavaScript:
		return Code(rv.JavaScript()), true, nil
	case bsontype.Symbol:
		return Symbol(rv.Symbol()), true, nil
	case bsontype.CodeWithScope:
		code, scope := rv.CodeWithScope()
		sd, err := parseRawDocument(scope)
		if err != nil {
			return Value{}, false, err
		}
		return CodeWithScope(code, sd), true, nil
	case bsontype.Int32:
		return Int32(rv.Int32()), true, nil
	case bsontype.Timestamp:
		t, i := rv.Timestamp()
		return Timestamp(int64(t)<<32 | int64(i)), true, nil
	case bsontype.Int64:
		return Int64(rv.Int64()), true, nil
	case bsontype.Decimal128:
		return Decimal128(rv.Decimal128().String()), true, nil
	}

	return Value{}, false, nil
}
