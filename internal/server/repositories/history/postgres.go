// Package history provides the PostgreSQL-backed work-order history lookup.
package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/wotracker/internal/dbx"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
)

// PostgresRepository reads bb_wo_history over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByWorkOrder returns the entries of one work order ordered by ID. No
// entries is an empty, non-nil slice. DESCRIPTION may hold HTML and is
// returned as stored.
func (r *PostgresRepository) ListByWorkOrder(ctx context.Context, number string) ([]models.WorkOrderHistoryEntry, error) {
	query := `
		SELECT "ID", "WO_NUMBER", "DESCRIPTION" FROM bb_wo_history
		WHERE "WO_NUMBER" = $1
		ORDER BY "ID"
	`
	rows, err := r.db.QueryContext(ctx, query, number)
	if err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	defer rows.Close()

	result := []models.WorkOrderHistoryEntry{}
	for rows.Next() {
		var (
			entry       models.WorkOrderHistoryEntry
			description sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Number, &description); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		entry.Description = description.String
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to select history: %w", err)
	}
	return result, nil
}
