// Package workorders provides the PostgreSQL-backed work-order queries.
package workorders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/dbx"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
	"github.com/lib/pq"
)

// PostgresRepository reads bb_wo over a dbx.DBTX (*sql.DB or *sql.Tx). Run
// List and Count on the same *sql.Tx to get a consistent page and total.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns at most limit work orders after skipping offset rows. The
// WO_NUMBER tie-break makes the order total, so consecutive pages never
// overlap or skip rows.
func (r *PostgresRepository) List(ctx context.Context, projects []string, limit, offset int) ([]models.WorkOrder, error) {
	query := `
		SELECT "WO_NUMBER", "PROJECT", "WO_TYPE", "WO_STATUS", "CRE_BY", "CRE_DT", "WO_DUEDATE",
			"ASSIGNED_TO", "WO_TITLE", "WO_SPECIFICLOCATION", "WO_ADDITIONAL_NOTE"
		FROM bb_wo
		WHERE "PROJECT" = ANY($1)
		ORDER BY "WO_STATUS" DESC, "WO_NUMBER" ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(projects), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to select work orders: %w", err)
	}
	defer rows.Close()

	result := []models.WorkOrder{}
	for rows.Next() {
		var (
			wo                                    models.WorkOrder
			woType, status, createdBy, assignedTo sql.NullString
			title, location, note                 sql.NullString
			createdAt, dueDate                    sql.NullTime
		)
		if err := rows.Scan(
			&wo.Number, &wo.Project, &woType, &status, &createdBy, &createdAt, &dueDate,
			&assignedTo, &title, &location, &note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		wo.Type = woType.String
		wo.Status = status.String
		wo.CreatedBy = createdBy.String
		wo.AssignedTo = assignedTo.String
		wo.Title = title.String
		wo.SpecificLocation = location.String
		wo.AdditionalNote = note.String
		if createdAt.Valid {
			wo.CreatedAt = &createdAt.Time
		}
		if dueDate.Valid {
			wo.DueDate = &dueDate.Time
		}
		result = append(result, wo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to select work orders: %w", err)
	}
	return result, nil
}

// Count returns the size of the whole scoped set, independent of paging.
func (r *PostgresRepository) Count(ctx context.Context, projects []string) (int64, error) {
	query := `SELECT COUNT(*) FROM bb_wo WHERE "PROJECT" = ANY($1)`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, pq.Array(projects)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count work orders: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) ProjectOf(ctx context.Context, number string) (string, error) {
	query := `SELECT "PROJECT" FROM bb_wo WHERE "WO_NUMBER" = $1`

	var project string
	if err := r.db.QueryRowContext(ctx, query, number).Scan(&project); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return project, nil
}
