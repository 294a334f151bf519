package db

import (
	"database/sql"
	"fmt"
)

// LoadHexCells reads a single column of hex-encoded H3 cell indices out of
// a Parquet file via DuckDB's parquet extension (already loaded by Get).
// column is validated against a strict identifier pattern before being
// interpolated into the query, since DuckDB's read_parquet doesn't accept
// column names as bound parameters.
func LoadHexCells(conn *sql.DB, parquetPath, column string) ([]string, error) {
	if !isSimpleIdent(column) {
		return nil, fmt.Errorf("db: invalid column name %q", column)
	}

	query := fmt.Sprintf("SELECT %s FROM read_parquet(?)", column)
	rows, err := conn.Query(query, parquetPath)
	if err != nil {
		return nil, fmt.Errorf("db: load hex cells: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var hex string
		if err := rows.Scan(&hex); err != nil {
			return nil, fmt.Errorf("db: scan cell: %w", err)
		}
		out = append(out, hex)
	}
	return out, rows.Err()
}

func isSimpleIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
