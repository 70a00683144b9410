// Package users provides the PostgreSQL-backed credential store.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/dbx"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
)

// PostgresRepository reads accounts from bb_users over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetUserByLogin returns the single account whose user name matches, or
// common.ErrorNotFound.
func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.UserAccount, error) {
	query :=
		`SELECT user_id, user_name, "PASSWORD", display_name, email FROM bb_users
		 WHERE user_name = $1
		 LIMIT 1
		 `

	var (
		user        models.UserAccount
		displayName sql.NullString
		email       sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, userName).
		Scan(&user.ID, &user.UserName, &user.Password, &displayName, &email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.DisplayName = displayName.String
	user.Email = email.String
	return &user, nil
}
