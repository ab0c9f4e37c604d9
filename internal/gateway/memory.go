package gateway

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryTables is an in-process Tables used by tests and by the "memory"
// gateway driver. Inserted rows get an id and a created_at when missing;
// created_at values are strictly increasing so newest-first ordering is
// deterministic.
type MemoryTables struct {
	mu       sync.Mutex
	tables   map[string][]Row
	failures map[string]error
	last     time.Time
	now      func() time.Time
}

var _ Tables = (*MemoryTables)(nil)

func NewMemoryTables() *MemoryTables {
	return &MemoryTables{
		tables:   map[string][]Row{},
		failures: map[string]error{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// FailWrites makes every write to table return err until cleared with a nil err.
func (m *MemoryTables) FailWrites(table string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, table)
		return
	}
	m.failures[table] = err
}

// Len reports the number of rows in table.
func (m *MemoryTables) Len(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[table])
}

func (m *MemoryTables) Select(_ context.Context, table string, q Query) ([]Row, error) {
	if err := checkIdentifiers(table); err != nil {
		return nil, err
	}
	for _, f := range q.Filters {
		if err := checkIdentifiers(f.Column); err != nil {
			return nil, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []Row{}
	for _, row := range m.tables[table] {
		if matches(row, q.Filters) {
			items = append(items, copyRow(row))
		}
	}
	if q.OrderBy != "" {
		if err := checkIdentifiers(q.OrderBy); err != nil {
			return nil, err
		}
		sort.SliceStable(items, func(i, j int) bool {
			c := compareValues(items[i][q.OrderBy], items[j][q.OrderBy])
			if q.Descending {
				return c > 0
			}
			return c < 0
		})
	}
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

func (m *MemoryTables) Insert(_ context.Context, table string, row Row) (Row, error) {
	if err := checkIdentifiers(table); err != nil {
		return nil, err
	}
	if err := checkIdentifiers(sortedColumns(row)...); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures[table]; err != nil {
		return nil, err
	}
	stored := withGeneratedID(row)
	id := stored["id"].(string)
	if m.indexOf(table, id) >= 0 {
		return nil, fmt.Errorf("gateway: duplicate key %s.id=%s", table, id)
	}
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = m.nextTimestamp()
	}
	m.tables[table] = append(m.tables[table], stored)
	return copyRow(stored), nil
}

func (m *MemoryTables) Update(_ context.Context, table string, id string, values Row) error {
	if err := checkIdentifiers(table); err != nil {
		return err
	}
	if err := checkIdentifiers(sortedColumns(values)...); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures[table]; err != nil {
		return err
	}
	idx := m.indexOf(table, id)
	if idx < 0 {
		return ErrNotFound
	}
	for column, value := range values {
		m.tables[table][idx][column] = value
	}
	return nil
}

func (m *MemoryTables) Upsert(_ context.Context, table string, row Row) error {
	if err := checkIdentifiers(table); err != nil {
		return err
	}
	id, _ := row["id"].(string)
	if id == "" {
		return errors.New("gateway: upsert requires an id column")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures[table]; err != nil {
		return err
	}
	if idx := m.indexOf(table, id); idx >= 0 {
		for column, value := range row {
			m.tables[table][idx][column] = value
		}
		return nil
	}
	m.tables[table] = append(m.tables[table], copyRow(row))
	return nil
}

func (m *MemoryTables) DeleteByID(ctx context.Context, table string, id string) error {
	n, err := m.Delete(ctx, table, Where(Eq("id", id)))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryTables) Delete(_ context.Context, table string, q Query) (int64, error) {
	if err := checkIdentifiers(table); err != nil {
		return 0, err
	}
	if len(q.Filters) == 0 {
		return 0, ErrUnfilteredDelete
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failures[table]; err != nil {
		return 0, err
	}
	kept := m.tables[table][:0]
	var removed int64
	for _, row := range m.tables[table] {
		if matches(row, q.Filters) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	m.tables[table] = kept
	return removed, nil
}

func (m *MemoryTables) indexOf(table, id string) int {
	for i, row := range m.tables[table] {
		if fmt.Sprint(row["id"]) == id {
			return i
		}
	}
	return -1
}

func (m *MemoryTables) nextTimestamp() time.Time {
	ts := m.now()
	if !ts.After(m.last) {
		ts = m.last.Add(time.Microsecond)
	}
	m.last = ts
	return ts
}

func matches(row Row, filters []Filter) bool {
	for _, f := range filters {
		equal := compareValues(row[f.Column], f.Value) == 0
		switch f.Op {
		case OpEq:
			if !equal {
				return false
			}
		case OpNeq:
			if equal {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// compareValues orders the column types the site stores: times, numbers,
// booleans and strings. Mixed or unknown types fall back to their string form.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
