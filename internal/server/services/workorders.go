package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/wotracker/internal/common"
	"github.com/dmitrijs2005/wotracker/internal/dbx"
	"github.com/dmitrijs2005/wotracker/internal/logging"
	"github.com/dmitrijs2005/wotracker/internal/server/config"
	"github.com/dmitrijs2005/wotracker/internal/server/models"
	"github.com/dmitrijs2005/wotracker/internal/server/repositories/repomanager"
)

// WorkOrderService serves scoped, paginated work-order listings and
// work-order history.
type WorkOrderService struct {
	db                *sql.DB
	repomanager       repomanager.RepositoryManager
	scopes            *ScopeResolver
	historyScopeCheck bool
	log               logging.Logger
}

// NewWorkOrderService constructs a WorkOrderService using repositories and
// server config.
func NewWorkOrderService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *WorkOrderService {
	return &WorkOrderService{
		db:                db,
		repomanager:       m,
		scopes:            NewScopeResolver(db, m),
		historyScopeCheck: cfg.HistoryScopeCheck,
		log:               log,
	}
}

// List returns one page of the work orders visible to identity. Scope, total
// count and page are read from a single snapshot, so TotalCount always
// describes the set the page was cut from.
func (s *WorkOrderService) List(ctx context.Context, identity models.Identity, req models.PageRequest) (*models.WorkOrderPage, error) {
	req = req.Normalize()

	var page *models.WorkOrderPage
	err := dbx.WithSnapshot(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		projects, err := s.scopes.scopeFor(ctx, tx, identity)
		if err != nil {
			return err
		}
		page, err = s.listForScope(ctx, tx, projects, req)
		return err
	})
	if err != nil {
		return nil, s.storeFailure(ctx, "error listing work orders", err)
	}
	return page, nil
}

func (s *WorkOrderService) listForScope(ctx context.Context, tx dbx.DBTX, projects []string, req models.PageRequest) (*models.WorkOrderPage, error) {
	page := &models.WorkOrderPage{
		Items:       []models.WorkOrder{},
		CurrentPage: req.Page,
		PageSize:    req.PageSize,
	}
	if len(projects) == 0 {
		return page, nil
	}

	repo := s.repomanager.WorkOrders(tx)
	total, err := repo.Count(ctx, projects)
	if err != nil {
		return nil, err
	}
	page.TotalCount = total
	page.TotalPages = req.TotalPages(total)

	offset := req.Offset()
	if offset >= total {
		return page, nil
	}
	items, err := repo.List(ctx, projects, req.Limit(), int(offset))
	if err != nil {
		return nil, err
	}
	page.Items = items
	return page, nil
}

// History returns the history entries of work order number. A blank number
// is common.ErrInvalidInput. When the scope check is on, a work order that
// does not exist or lies outside identity's scope yields an empty list.
func (s *WorkOrderService) History(ctx context.Context, identity models.Identity, number string) ([]models.WorkOrderHistoryEntry, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: WO_NUMBER is required", common.ErrInvalidInput)
	}

	if !s.historyScopeCheck {
		entries, err := s.repomanager.History(s.db).ListByWorkOrder(ctx, number)
		if err != nil {
			return nil, s.storeFailure(ctx, "error reading work order history", err)
		}
		return entries, nil
	}

	entries := []models.WorkOrderHistoryEntry{}
	err := dbx.WithSnapshot(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		projects, err := s.scopes.scopeFor(ctx, tx, identity)
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			return nil
		}

		project, err := s.repomanager.WorkOrders(tx).ProjectOf(ctx, number)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil
			}
			return err
		}
		if !slices.Contains(projects, project) {
			s.log.Debug(ctx, "history outside scope", "wo_number", number)
			return nil
		}

		entries, err = s.repomanager.History(tx).ListByWorkOrder(ctx, number)
		return err
	})
	if err != nil {
		return nil, s.storeFailure(ctx, "error reading work order history", err)
	}
	return entries, nil
}

// storeFailure logs err and returns it marked as common.ErrStoreUnavailable.
func (s *WorkOrderService) storeFailure(ctx context.Context, msg string, err error) error {
	s.log.Error(ctx, msg, "error", err)
	if errors.Is(err, common.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", common.ErrStoreUnavailable, msg, err)
}
