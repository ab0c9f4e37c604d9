package gateway

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type Op string

const (
	OpEq  Op = "="
	OpNeq Op = "<>"
)

type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Query narrows and orders a select or delete.
type Query struct {
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

func Neq(column string, value any) Filter {
	return Filter{Column: column, Op: OpNeq, Value: value}
}

// Where returns a query with the given filters.
func Where(filters ...Filter) Query {
	return Query{Filters: filters}
}

// Order returns a copy of q ordered by column.
func (q Query) Order(column string, descending bool) Query {
	q.OrderBy = column
	q.Descending = descending
	return q
}

func (q Query) WithLimit(limit int) Query {
	q.Limit = limit
	return q
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func validIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

func checkIdentifiers(names ...string) error {
	for _, name := range names {
		if !validIdentifier(name) {
			return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
		}
	}
	return nil
}

// withGeneratedID returns a copy of row that carries an id, generating a
// UUID when the caller left it empty.
func withGeneratedID(row Row) Row {
	out := copyRow(row)
	if id, _ := out["id"].(string); id == "" {
		out["id"] = uuid.NewString()
	}
	return out
}

func sortedColumns(row Row) []string {
	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}

// whereClause renders filters as a WHERE clause with positional parameters
// starting at $start.
func whereClause(filters []Filter, start int) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	parts := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for i, f := range filters {
		if err := checkIdentifiers(f.Column); err != nil {
			return "", nil, err
		}
		if f.Op != OpEq && f.Op != OpNeq {
			return "", nil, fmt.Errorf("gateway: unsupported operator %q", f.Op)
		}
		parts = append(parts, fmt.Sprintf("%s %s $%d", f.Column, f.Op, start+i))
		args = append(args, f.Value)
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func buildSelect(table string, q Query) (string, []any, error) {
	if err := checkIdentifiers(table); err != nil {
		return "", nil, err
	}
	where, args, err := whereClause(q.Filters, 1)
	if err != nil {
		return "", nil, err
	}
	var b strings.Builder
	b.WriteString("SELECT * FROM ")
	b.WriteString(table)
	b.WriteString(where)
	if q.OrderBy != "" {
		if err := checkIdentifiers(q.OrderBy); err != nil {
			return "", nil, err
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(q.OrderBy)
		if q.Descending {
			b.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), args, nil
}

func buildInsert(table string, row Row, upsert bool) (string, []any, error) {
	if err := checkIdentifiers(table); err != nil {
		return "", nil, err
	}
	columns := sortedColumns(row)
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("gateway: empty insert into %s", table)
	}
	if err := checkIdentifiers(columns...); err != nil {
		return "", nil, err
	}
	placeholders := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, column := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = row[column]
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
	if upsert {
		updates := make([]string, 0, len(columns))
		for _, column := range columns {
			if column == "id" {
				continue
			}
			updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		}
		if len(updates) == 0 {
			query += " ON CONFLICT (id) DO NOTHING"
		} else {
			query += " ON CONFLICT (id) DO UPDATE SET " + strings.Join(updates, ", ")
		}
		return query, args, nil
	}
	return query + " RETURNING *", args, nil
}

func buildUpdate(table, id string, values Row) (string, []any, error) {
	if err := checkIdentifiers(table); err != nil {
		return "", nil, err
	}
	columns := sortedColumns(values)
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("gateway: empty update of %s", table)
	}
	if err := checkIdentifiers(columns...); err != nil {
		return "", nil, err
	}
	sets := make([]string, len(columns))
	args := make([]any, 0, len(columns)+1)
	for i, column := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", column, i+1)
		args = append(args, values[column])
	}
	args = append(args, id)
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(args)), args, nil
}

func buildDelete(table string, q Query) (string, []any, error) {
	if err := checkIdentifiers(table); err != nil {
		return "", nil, err
	}
	if len(q.Filters) == 0 {
		return "", nil, ErrUnfilteredDelete
	}
	where, args, err := whereClause(q.Filters, 1)
	if err != nil {
		return "", nil, err
	}
	return "DELETE FROM " + table + where, args, nil
}
