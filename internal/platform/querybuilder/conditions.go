package querybuilder

import (
	"strconv"
	"strings"
)

// Condition renders one WHERE predicate, numbering its placeholders from argIndex.
type Condition interface {
	appendSQL(buf *strings.Builder, args *[]any, argIndex *int)
}

type compareCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return compareCondition{column: column, op: "=", value: value}
}

func (c compareCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	buf.WriteString(c.column)
	buf.WriteString(" ")
	buf.WriteString(c.op)
	buf.WriteString(" ")
	buf.WriteString(bind(args, argIndex, c.value))
}

type inCondition struct {
	column string
	values []any
	negate bool
}

func In(column string, values []any) Condition {
	return inCondition{column: column, values: values}
}

func NotIn(column string, values []any) Condition {
	return inCondition{column: column, values: values, negate: true}
}

// Strings adapts a string slice for In and NotIn.
func Strings(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func (c inCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	if len(c.values) == 0 {
		if c.negate {
			buf.WriteString("1=1")
		} else {
			buf.WriteString("1=0")
		}
		return
	}

	buf.WriteString(c.column)
	if c.negate {
		buf.WriteString(" NOT IN (")
	} else {
		buf.WriteString(" IN (")
	}
	for i, v := range c.values {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(bind(args, argIndex, v))
	}
	buf.WriteString(")")
}

type groupCondition struct {
	op    string
	parts []Condition
}

// And groups conditions in parentheses, which matters only inside Or.
func And(conditions ...Condition) Condition {
	return groupCondition{op: " AND ", parts: conditions}
}

func Or(conditions ...Condition) Condition {
	return groupCondition{op: " OR ", parts: conditions}
}

func (c groupCondition) appendSQL(buf *strings.Builder, args *[]any, argIndex *int) {
	if len(c.parts) == 0 {
		buf.WriteString("1=1")
		return
	}
	buf.WriteString("(")
	for i, part := range c.parts {
		if i > 0 {
			buf.WriteString(c.op)
		}
		part.appendSQL(buf, args, argIndex)
	}
	buf.WriteString(")")
}

func bind(args *[]any, argIndex *int, value any) string {
	ph := placeholder(*argIndex)
	*args = append(*args, value)
	*argIndex = *argIndex + 1
	return ph
}

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}
