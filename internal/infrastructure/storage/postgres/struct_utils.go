package postgres

import (
	"reflect"
	"sync"
)

// columnMeta holds the pre-computed mapping of struct fields to DB
// columns for one type. Embedded structs (entity.Catalog, entity.Document)
// are flattened recursively.
type columnMeta struct {
	names    []string
	indices  []int
	embedded []int
}

var columnCache sync.Map // map[reflect.Type]*columnMeta

func metaFor(t reflect.Type) *columnMeta {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := columnCache.Load(t); ok {
		return cached.(*columnMeta)
	}

	meta := &columnMeta{}
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.Anonymous {
				meta.embedded = append(meta.embedded, i)
				continue
			}
			tag := field.Tag.Get("db")
			if tag == "" || tag == "-" {
				continue
			}
			meta.names = append(meta.names, tag)
			meta.indices = append(meta.indices, i)
		}
	}

	columnCache.Store(t, meta)
	return meta
}

// ExtractDBColumns lists the column names from a struct's "db" tags,
// including those of embedded structs. Called once per repository at
// construction, so reflection cost does not matter.
func ExtractDBColumns[T any]() []string {
	var zero T
	return columnsOf(reflect.TypeOf(zero))
}

func columnsOf(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	meta := metaFor(t)
	cols := make([]string, 0, len(meta.names))
	for _, emb := range meta.embedded {
		cols = append(cols, columnsOf(t.Field(emb).Type)...)
	}
	cols = append(cols, meta.names...)
	return cols
}

// StructToMap converts a struct to a column->value map using "db" tags.
// Metadata is cached per type, so repeated calls skip tag parsing.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	meta := metaFor(rv.Type())
	res := make(map[string]any, len(meta.names))

	for _, emb := range meta.embedded {
		for k, val := range StructToMap(rv.Field(emb).Interface()) {
			res[k] = val
		}
	}
	for i, idx := range meta.indices {
		res[meta.names[i]] = rv.Field(idx).Interface()
	}

	return res
}
