package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"broadcastdash/api/database"
	"broadcastdash/api/dataset"
)

type clickhouseQuerier interface {
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
}

// ClickHouseSource loads the session table from ClickHouse. Every column is
// selected as text so the CSV typing rules apply unchanged.
type ClickHouseSource struct {
	conn   clickhouseQuerier
	table  string
	logger *slog.Logger
}

func NewClickHouseSource(chClient *database.ClickHouseClient, table string, logger *slog.Logger) *ClickHouseSource {
	return &ClickHouseSource{conn: chClient.Conn, table: table, logger: logger}
}

func (s *ClickHouseSource) Describe() string { return "clickhouse:" + s.table }

func (s *ClickHouseSource) Load(ctx context.Context) (*dataset.Table, error) {
	if err := validateTable(s.table); err != nil {
		return nil, err
	}

	selects := make([]string, 0, len(sessionColumns))
	for _, col := range sessionColumns {
		selects = append(selects, fmt.Sprintf("ifNull(toString(%s), '') AS %s", col, col))
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
	`, strings.Join(selects, ", "), s.table)

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	table, err := collectRows(rows)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded sessions from ClickHouse", "table", s.table, "rows", table.Len())
	return table, nil
}
