package sqlbuilder

import (
	"slices"
	"strings"
)

// Where accumulates predicates for a WHERE clause.
//
// Placeholders are numbered continuously across everything appended, so
// any subset of optional predicates produces a valid clause. Column
// arguments are written verbatim and must be constants.
//
// The zero value is ready to use.
type Where struct {
	predicates []string
	values     []any
}

// bind records v and returns its placeholder.
func (w *Where) bind(v any) string {
	w.values = append(w.values, v)
	return placeholder(len(w.values))
}

// AtLeast appends "column >= $n".
func (w *Where) AtLeast(column string, v any) *Where {
	w.predicates = append(w.predicates, column+" >= "+w.bind(v))
	return w
}

// Positive appends "column > 0". It binds nothing.
func (w *Where) Positive(column string) *Where {
	w.predicates = append(w.predicates, column+" > 0")
	return w
}

// Contains appends a case-insensitive substring match, "column ILIKE $n",
// binding %substr%.
func (w *Where) Contains(column, substr string) *Where {
	w.predicates = append(w.predicates, column+" ILIKE "+w.bind("%"+substr+"%"))
	return w
}

// Clause joins the predicates with AND. With no predicates it returns an
// empty clause and the caller must leave out the WHERE keyword.
func (w *Where) Clause() Clause {
	if len(w.predicates) == 0 {
		return Clause{}
	}
	return Clause{
		SQL:    strings.Join(w.predicates, " AND "),
		Values: slices.Clone(w.values),
	}
}
