// Package sqlbuilder produces positionally-parameterized SQL fragments.
//
// Fragments never contain caller values: every value is bound to a $n
// placeholder and returned separately, in placeholder order, so that
// Clause.Values[k-1] is always the value of $k.
package sqlbuilder

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/deppfellow/jobly/internal/errs"
	"github.com/jackc/pgx/v5"
)

// Clause is a SQL fragment and the values bound to its placeholders.
type Clause struct {
	SQL    string
	Values []any
}

// Empty reports whether the clause has no SQL text.
func (c Clause) Empty() bool {
	return c.SQL == ""
}

// Next returns the placeholder that follows the clause's own placeholders,
// for callers that append further parameters (e.g. "WHERE id = $n").
func (c Clause) Next() string {
	return placeholder(len(c.Values) + 1)
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// PartialUpdate builds the body of a SET clause from a sparse update.
//
// data maps logical field names to new values; columns maps logical names to
// column names, and fields missing from columns use the logical name as is.
// Every column is emitted as a quoted identifier. Keys are processed in
// ascending order, so the same input always yields the same placeholders:
//
//	PartialUpdate(map[string]any{"numEmployees": 5, "name": "Acme"},
//		map[string]string{"numEmployees": "num_employees"})
//	// "name" = $1, "num_employees" = $2   [Acme 5]
//
// Column names are not checked against any schema; data keys must come from
// trusted code, not from request bodies.
func PartialUpdate(data map[string]any, columns map[string]string) (Clause, error) {
	if len(data) == 0 {
		return Clause{}, errs.NewInvalidArgumentError("No data", true, nil, nil)
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	sets := make([]string, len(keys))
	values := make([]any, len(keys))
	for i, key := range keys {
		column, ok := columns[key]
		if !ok {
			column = key
		}
		sets[i] = fmt.Sprintf("%s = %s", pgx.Identifier{column}.Sanitize(), placeholder(i+1))
		values[i] = data[key]
	}

	return Clause{
		SQL:    strings.Join(sets, ", "),
		Values: values,
	}, nil
}
