package memberships

import "context"

// Repository reads the account ↔ project membership relation.
type Repository interface {
	// ProjectsFor returns the distinct projects userName belongs to, sorted.
	// No memberships is an empty slice, not an error.
	ProjectsFor(ctx context.Context, userName string) ([]string, error)
}
