package users

import (
	"context"

	"github.com/dmitrijs2005/wotracker/internal/server/models"
)

// Repository is the credential store: read-only access to user accounts.
type Repository interface {
	// GetUserByLogin returns the account with the given user name, or
	// common.ErrorNotFound.
	GetUserByLogin(ctx context.Context, userName string) (*models.UserAccount, error)
}
