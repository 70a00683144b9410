package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/wotracker/internal/dbx"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/history"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/revocations"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/users"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/workorders"
)

// RepositoryManager vends repositories bound to a connection or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Memberships(db dbx.DBTX) memberships.Repository
	WorkOrders(db dbx.DBTX) workorders.Repository
	History(db dbx.DBTX) history.Repository
	Revocations(db dbx.DBTX) revocations.Repository
}
