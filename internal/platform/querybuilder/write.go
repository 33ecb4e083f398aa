package querybuilder

import (
	"fmt"
	"slices"
	"strings"
)

type conflictAction int

const (
	conflictNone conflictAction = iota
	conflictDoNothing
	conflictDoUpdate
)

// InsertBuilder renders a single-row INSERT with an optional ON CONFLICT clause.
type InsertBuilder struct {
	table     string
	columns   []string
	values    []any
	conflict  []string
	action    conflictAction
	updateSet []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.values = append([]any(nil), values...)
	return b
}

// OnConflict names the unique key the following DoNothing or DoUpdate applies to.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.conflict = append([]string(nil), columns...)
	return b
}

// DoNothing keeps the existing row. Used for first-write-wins tables.
func (b *InsertBuilder) DoNothing() *InsertBuilder {
	b.action = conflictDoNothing
	return b
}

// DoUpdate overwrites the given columns from the rejected row. With no columns it
// overwrites every inserted column outside the conflict key.
func (b *InsertBuilder) DoUpdate(columns ...string) *InsertBuilder {
	b.action = conflictDoUpdate
	b.updateSet = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.values) != len(b.columns) {
		return "", nil, fmt.Errorf("insert has %d values, expected %d", len(b.values), len(b.columns))
	}
	if b.action != conflictNone && len(b.conflict) == 0 {
		return "", nil, fmt.Errorf("conflict columns are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES (")

	args := make([]any, 0, len(b.values))
	argIndex := 1
	for i, value := range b.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(bind(&args, &argIndex, value))
	}
	buf.WriteString(")")

	switch b.action {
	case conflictDoNothing:
		buf.WriteString(" ON CONFLICT (")
		buf.WriteString(strings.Join(b.conflict, ", "))
		buf.WriteString(") DO NOTHING")
	case conflictDoUpdate:
		set := b.updateSet
		if len(set) == 0 {
			for _, column := range b.columns {
				if !slices.Contains(b.conflict, column) {
					set = append(set, column)
				}
			}
		}
		if len(set) == 0 {
			return "", nil, fmt.Errorf("no columns left to update on conflict")
		}
		buf.WriteString(" ON CONFLICT (")
		buf.WriteString(strings.Join(b.conflict, ", "))
		buf.WriteString(") DO UPDATE SET ")
		for i, column := range set {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(column)
			buf.WriteString(" = EXCLUDED.")
			buf.WriteString(column)
		}
	}

	return buf.String(), args, nil
}

type setClause struct {
	column string
	value  any
	raw    string
}

type UpdateBuilder struct {
	table string
	sets  []setClause
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetRaw assigns a SQL expression without arguments, such as NOW().
func (b *UpdateBuilder) SetRaw(column, expr string) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, raw: expr})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("update without where is not allowed")
	}

	var buf strings.Builder
	buf.WriteString("UPDATE ")
	buf.WriteString(b.table)
	buf.WriteString(" SET ")

	args := make([]any, 0, len(b.sets)+len(b.where))
	argIndex := 1
	for i, s := range b.sets {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.column)
		buf.WriteString(" = ")
		if s.raw != "" {
			buf.WriteString(s.raw)
			continue
		}
		buf.WriteString(bind(&args, &argIndex, s.value))
	}

	appendWhereClause(&buf, b.where, &args, &argIndex)
	return buf.String(), args, nil
}
