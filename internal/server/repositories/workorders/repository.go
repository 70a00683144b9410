package workorders

import (
	"context"

	"github.com/dmitrijs2005/wotracker/internal/server/models"
)

// Repository reads work orders restricted to a set of projects.
type Repository interface {
	// List returns one page of work orders whose project is in projects,
	// ordered by status descending, then work-order number ascending.
	List(ctx context.Context, projects []string, limit, offset int) ([]models.WorkOrder, error)

	// Count returns the number of work orders whose project is in projects.
	Count(ctx context.Context, projects []string) (int64, error)

	// ProjectOf returns the project of the given work order, or
	// common.ErrorNotFound.
	ProjectOf(ctx context.Context, number string) (string, error)
}
