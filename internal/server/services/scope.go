package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/dbx"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/repomanager"
)

// ScopeResolver maps an identity to the projects it may see.
type ScopeResolver struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewScopeResolver constructs a ScopeResolver over the memberships repository.
func NewScopeResolver(db *sql.DB, m repomanager.RepositoryManager) *ScopeResolver {
	return &ScopeResolver{db: db, repomanager: m}
}

// ScopeFor returns the projects identity is a member of. Memberships are
// keyed by the account's email. No memberships, or an identity without an
// email, is an empty scope.
func (r *ScopeResolver) ScopeFor(ctx context.Context, identity models.Identity) ([]string, error) {
	return r.scopeFor(ctx, r.db, identity)
}

func (r *ScopeResolver) scopeFor(ctx context.Context, db dbx.DBTX, identity models.Identity) ([]string, error) {
	if identity.Email == "" {
		return []string{}, nil
	}
	projects, err := r.repomanager.Memberships(db).ProjectsFor(ctx, identity.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: error resolving scope: %v", common.ErrStoreUnavailable, err)
	}
	return projects, nil
}
