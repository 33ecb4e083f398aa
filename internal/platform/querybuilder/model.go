package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel starts an insert from a struct's `db` tags. Untagged, "-" and unexported
// fields are skipped, so table models can carry extra fields for scanning.
func InsertModel(table string, model any) (*InsertBuilder, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return nil, fmt.Errorf("insert model into %s: %w", table, err)
	}
	return InsertInto(table).Columns(cols...).Values(vals...), nil
}

// UpsertModel inserts the model and overwrites every non-key column when conflictColumns
// already exist.
func UpsertModel(table string, model any, conflictColumns ...string) (string, []any, error) {
	builder, err := InsertModel(table, model)
	if err != nil {
		return "", nil, err
	}
	return builder.OnConflict(conflictColumns...).DoUpdate().ToSQL()
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
