package backend

import (
	"context"
	"fmt"
)

type operation int

const (
	opSelect operation = iota
	opInsert
	opUpdate
	opDelete
)

type filter struct {
	column string
	value  string
}

type ordering struct {
	column    string
	ascending bool
}

// Query is a table request under construction. Build it with From and finish with
// Execute or Count.
type Query struct {
	exec    executor
	table   string
	op      operation
	columns string
	head    bool
	filters []filter
	orders  []ordering
	limit   int
	single  bool
	body    any
}

func newQuery(exec executor, table string) *Query {
	return &Query{exec: exec, table: table, op: opSelect, columns: "*"}
}

// Select requests the given columns ("*" when empty).
func (q *Query) Select(columns string) *Query {
	q.op = opSelect
	if columns != "" {
		q.columns = columns
	}
	return q
}

// Insert sends row as a new record.
func (q *Query) Insert(row any) *Query {
	q.op = opInsert
	q.body = row
	return q
}

// Update patches the rows matched by the filters with values.
func (q *Query) Update(values any) *Query {
	q.op = opUpdate
	q.body = values
	return q
}

// Delete removes the rows matched by the filters.
func (q *Query) Delete() *Query {
	q.op = opDelete
	return q
}

// Eq adds an equality filter.
func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, filter{column: column, value: fmt.Sprint(value)})
	return q
}

// Order sorts by column.
func (q *Query) Order(column string, ascending bool) *Query {
	q.orders = append(q.orders, ordering{column: column, ascending: ascending})
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Single expects exactly one row and decodes it as an object instead of an array.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

// Table returns the target table.
func (q *Query) Table() string { return q.table }

// Execute runs the query and decodes the returned rows into dest (may be nil).
func (q *Query) Execute(ctx context.Context, dest any) error {
	_, err := q.exec.execute(ctx, q, dest)
	return err
}

// Count runs a head-only exact count of the rows matched by the filters.
func (q *Query) Count(ctx context.Context) (int64, error) {
	q.op = opSelect
	q.head = true
	return q.exec.execute(ctx, q, nil)
}
