package history

import (
	"context"

	"github.com/dmitrijs2005/wotracker/internal/server/models"
)

// Repository reads work-order history entries.
type Repository interface {
	// ListByWorkOrder returns the entries of one work order in insertion
	// order. None is an empty slice, not an error.
	ListByWorkOrder(ctx context.Context, number string) ([]models.WorkOrderHistoryEntry, error)
}
