// Package memberships provides the PostgreSQL-backed project membership
// lookup used to resolve an identity's authorization scope.
package memberships

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wotracker/internal/dbx"
)

// PostgresRepository reads bb_user_projects over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ProjectsFor returns the projects userName is a member of.
func (r *PostgresRepository) ProjectsFor(ctx context.Context, userName string) ([]string, error) {
	query := `
		SELECT DISTINCT "PROJECT" FROM bb_user_projects
		WHERE "USER_NAME" = $1
		ORDER BY "PROJECT"
	`
	rows, err := r.db.QueryContext(ctx, query, userName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	projects := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return projects, nil
}
