package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"broadcastdash/api/dataset"
	"broadcastdash/api/models"
)

// psq is the PostgreSQL statement builder with dollar placeholders.
var psq = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresSource loads the session table from PostgreSQL.
type PostgresSource struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

func NewPostgresSource(db *sql.DB, table string, logger *slog.Logger) *PostgresSource {
	return &PostgresSource{db: db, table: table, logger: logger}
}

func (s *PostgresSource) Describe() string { return "postgres:" + s.table }

func (s *PostgresSource) Load(ctx context.Context) (*dataset.Table, error) {
	if err := validateTable(s.table); err != nil {
		return nil, err
	}

	selects := make([]string, 0, len(sessionColumns))
	for _, col := range sessionColumns {
		selects = append(selects, fmt.Sprintf("COALESCE(CAST(%s AS TEXT), '') AS %s", col, col))
	}
	query, args, err := psq.Select(selects...).From(s.table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building sessions query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	table, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded sessions from PostgreSQL", "table", s.table, "rows", table.Len())
	return table, nil
}

// rowScanner is the part of *sql.Rows and driver.Rows used here.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectRows(rows rowScanner) (*dataset.Table, error) {
	var records []models.SessionRecord
	values := make([]string, len(sessionColumns))
	dest := make([]any, len(values))
	for i := range values {
		dest[i] = &values[i]
	}

	for row := 1; rows.Next(); row++ {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning session row %d: %w", row, err)
		}
		rec, err := dataset.ParseRow(row, values)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session rows: %w", err)
	}
	return dataset.NewTable(records), nil
}
