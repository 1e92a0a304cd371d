// Package infer converts a finalized statistical schema into an OpenAPI
// schema suitable for export alongside the raw JSON form.
package infer

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/siegeai/schemascope/docvalue"
	"github.com/siegeai/schemascope/schemastat"
)

// OpenAPISchema renders one accumulator level as an object schema. Fields
// seen in every document at the level are required. Statistical detail
// (counts, probabilities, value pools) has no OpenAPI equivalent and is
// dropped; the JSON export keeps it.
func OpenAPISchema(a *schemastat.Accumulator) *openapi3.Schema {
	fields := a.Fields()

	ps := make(map[string]*openapi3.SchemaRef, len(fields))
	var rs []string
	for _, f := range fields {
		ps[leafName(f.Path)] = fieldSchema(f).NewRef()
		if f.Count == a.Count() {
			rs = append(rs, leafName(f.Path))
		}
	}

	return &openapi3.Schema{
		Type:       openapi3.TypeObject,
		Required:   rs,
		Properties: ps,
	}
}

func leafName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i+1:]
		}
	}
	return path
}

func fieldSchema(f *schemastat.Field) *openapi3.Schema {
	switch f.Type {
	case docvalue.LabelDocument:
		return OpenAPISchema(f.Schema)
	case docvalue.LabelArray:
		return &openapi3.Schema{
			Type:  openapi3.TypeArray,
			Items: valuePoolSchema(f.Values).NewRef(),
		}
	default:
		return labelSchema(f.Type)
	}
}

// valuePoolSchema unions the kinds present in a value pool, the same way the
// listener unions heterogeneous sample bodies.
func valuePoolSchema(values []docvalue.Normalized) *openapi3.Schema {
	seen := make(map[docvalue.NormalKind]bool)
	var kinds []docvalue.NormalKind
	for _, v := range values {
		if !seen[v.Kind()] {
			seen[v.Kind()] = true
			kinds = append(kinds, v.Kind())
		}
	}

	var elems []*openapi3.Schema
	nullable := false
	for _, k := range kinds {
		if k == docvalue.NormalNull {
			nullable = true
			continue
		}
		elems = append(elems, normalKindSchema(k))
	}

	var res *openapi3.Schema
	switch len(elems) {
	case 0:
		res = &openapi3.Schema{}
	case 1:
		res = elems[0]
	default:
		refs := make(openapi3.SchemaRefs, len(elems))
		for i, e := range elems {
			refs[i] = e.NewRef()
		}
		res = &openapi3.Schema{OneOf: refs}
	}
	res.Nullable = res.Nullable || nullable
	return res
}

func labelSchema(label string) *openapi3.Schema {
	switch label {
	case docvalue.LabelDouble:
		return &openapi3.Schema{Type: openapi3.TypeNumber}
	case docvalue.LabelInt32, docvalue.LabelInt64, docvalue.LabelTimestamp:
		return &openapi3.Schema{Type: openapi3.TypeInteger}
	case docvalue.LabelBoolean:
		return &openapi3.Schema{Type: openapi3.TypeBoolean}
	case docvalue.LabelNull:
		return &openapi3.Schema{Nullable: true}
	case docvalue.LabelBinary:
		return &openapi3.Schema{Type: openapi3.TypeString, Format: "byte"}
	case docvalue.LabelDatetime:
		return &openapi3.Schema{Type: openapi3.TypeString, Format: "date-time"}
	case docvalue.LabelDecimal128:
		return &openapi3.Schema{Type: openapi3.TypeString, Format: "decimal"}
	default:
		// ObjectId, Regex, Symbol, code and plain strings
		return &openapi3.Schema{Type: openapi3.TypeString}
	}
}

func normalKindSchema(k docvalue.NormalKind) *openapi3.Schema {
	switch k {
	case docvalue.NormalBoolean:
		return &openapi3.Schema{Type: openapi3.TypeBoolean}
	case docvalue.NormalInt32, docvalue.NormalInt64:
		return &openapi3.Schema{Type: openapi3.TypeInteger}
	case docvalue.NormalDouble:
		return &openapi3.Schema{Type: openapi3.TypeNumber}
	case docvalue.NormalDecimal:
		return &openapi3.Schema{Type: openapi3.TypeString, Format: "decimal"}
	case docvalue.NormalString:
		return &openapi3.Schema{Type: openapi3.TypeString}
	case docvalue.NormalBinary:
		return &openapi3.Schema{Type: openapi3.TypeString, Format: "byte"}
	}

	panic("should be unreachable")
}
