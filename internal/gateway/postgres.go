package gateway

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// PostgresTables implements Tables on a sqlx handle.
type PostgresTables struct {
	db *sqlx.DB
}

var _ Tables = (*PostgresTables)(nil)

func NewPostgresTables(db *sqlx.DB) *PostgresTables {
	return &PostgresTables{db: db}
}

func (t *PostgresTables) Select(ctx context.Context, table string, q Query) ([]Row, error) {
	query, args, err := buildSelect(table, q)
	if err != nil {
		return nil, err
	}
	rows, err := t.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Row{}
	for rows.Next() {
		row := map[string]any{}
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		items = append(items, normalizeRow(row))
	}
	return items, rows.Err()
}

func (t *PostgresTables) Insert(ctx context.Context, table string, row Row) (Row, error) {
	query, args, err := buildInsert(table, withGeneratedID(row), false)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := t.db.QueryRowxContext(ctx, query, args...).MapScan(out); err != nil {
		return nil, err
	}
	return normalizeRow(out), nil
}

func (t *PostgresTables) Update(ctx context.Context, table string, id string, values Row) error {
	query, args, err := buildUpdate(table, id, values)
	if err != nil {
		return err
	}
	result, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (t *PostgresTables) Upsert(ctx context.Context, table string, row Row) error {
	if _, ok := row["id"]; !ok {
		return errors.New("gateway: upsert requires an id column")
	}
	query, args, err := buildInsert(table, row, true)
	if err != nil {
		return err
	}
	_, err = t.db.ExecContext(ctx, query, args...)
	return err
}

func (t *PostgresTables) DeleteByID(ctx context.Context, table string, id string) error {
	query, args, err := buildDelete(table, Where(Eq("id", id)))
	if err != nil {
		return err
	}
	result, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (t *PostgresTables) Delete(ctx context.Context, table string, q Query) (int64, error) {
	query, args, err := buildDelete(table, q)
	if err != nil {
		return 0, err
	}
	result, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// normalizeRow turns driver byte slices (json, bytea) into strings so callers
// see one representation for text-like values.
func normalizeRow(row map[string]any) Row {
	out := make(Row, len(row))
	for key, value := range row {
		if b, ok := value.([]byte); ok {
			out[key] = string(b)
			continue
		}
		out[key] = value
	}
	return out
}
