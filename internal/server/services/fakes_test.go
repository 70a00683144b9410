package services

import (
	"cmp"
	"context"
	"database/sql"
	"slices"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/dbx"
	"github.com/dmitrijs2005/wotracker/internal/logging"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/history"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/revocations"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/users"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/workorders"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

type fakeUsersRepo struct {
	byName map[string]*models.UserAccount
	err    error
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.UserAccount, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeMembershipsRepo struct {
	projects map[string][]string
	err      error
}

func (f *fakeMembershipsRepo) ProjectsFor(ctx context.Context, userName string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := f.projects[userName]
	if p == nil {
		return []string{}, nil
	}
	return p, nil
}

// fakeWorkOrdersRepo keeps rows in memory and orders them the way the
// Postgres query does.
type fakeWorkOrdersRepo struct {
	rows     []models.WorkOrder
	listErr  error
	countErr error
	calls    int
	offsets  []int
}

func (f *fakeWorkOrdersRepo) scoped(projects []string) []models.WorkOrder {
	out := []models.WorkOrder{}
	for _, wo := range f.rows {
		if slices.Contains(projects, wo.Project) {
			out = append(out, wo)
		}
	}
	slices.SortFunc(out, func(a, b models.WorkOrder) int {
		if c := cmp.Compare(b.Status, a.Status); c != 0 {
			return c
		}
		return cmp.Compare(a.Number, b.Number)
	})
	return out
}

func (f *fakeWorkOrdersRepo) List(ctx context.Context, projects []string, limit, offset int) ([]models.WorkOrder, error) {
	f.calls++
	f.offsets = append(f.offsets, offset)
	if f.listErr != nil {
		return nil, f.listErr
	}
	all := f.scoped(projects)
	if offset >= len(all) {
		return []models.WorkOrder{}, nil
	}
	end := len(all)
	if limit < end-offset {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (f *fakeWorkOrdersRepo) Count(ctx context.Context, projects []string) (int64, error) {
	f.calls++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.scoped(projects))), nil
}

func (f *fakeWorkOrdersRepo) ProjectOf(ctx context.Context, number string) (string, error) {
	for _, wo := range f.rows {
		if wo.Number == number {
			return wo.Project, nil
		}
	}
	return "", common.ErrorNotFound
}

type fakeHistoryRepo struct {
	entries map[string][]models.WorkOrderHistoryEntry
	err     error
}

func (f *fakeHistoryRepo) ListByWorkOrder(ctx context.Context, number string) ([]models.WorkOrderHistoryEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	e := f.entries[number]
	if e == nil {
		return []models.WorkOrderHistoryEntry{}, nil
	}
	return e, nil
}

type fakeRevocationsRepo struct {
	revoked    map[string]time.Time
	deleted    int64
	deleteErr  error
	deleteArgs []time.Time
}

func (f *fakeRevocationsRepo) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if f.revoked == nil {
		f.revoked = map[string]time.Time{}
	}
	f.revoked[tokenID] = expiresAt
	return nil
}

func (f *fakeRevocationsRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := f.revoked[tokenID]
	return ok, nil
}

func (f *fakeRevocationsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.deleteArgs = append(f.deleteArgs, now)
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.deleted, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	m *fakeMembershipsRepo
	w *fakeWorkOrdersRepo
	h *fakeHistoryRepo
	r *fakeRevocationsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) Memberships(db dbx.DBTX) memberships.Repository { return m.m }
func (m *fakeRepoManager) WorkOrders(db dbx.DBTX) workorders.Repository   { return m.w }
func (m *fakeRepoManager) History(db dbx.DBTX) history.Repository         { return m.h }
func (m *fakeRepoManager) Revocations(db dbx.DBTX) revocations.Repository { return m.r }
