// Package access answers ownership questions before any engine mutation
package access

import (
	"context"
	"fmt"

	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/store"
)

// OwnershipChecker confirms that a user owns a project
//
//go:generate mockgen -source=access.go -destination=../mocks/access.go -package=mocks -mock_names=OwnershipChecker=MockOwnershipChecker
type OwnershipChecker interface {
	// OwnsProject reports whether userID owns projectID. An unknown project is not owned.
	OwnsProject(ctx context.Context, projectID, userID string) (bool, error)
}

type storeChecker struct {
	store store.Store
}

// NewStoreChecker creates an OwnershipChecker backed by projects.owner_id
func NewStoreChecker(s store.Store) OwnershipChecker {
	return &storeChecker{store: s}
}

func (c *storeChecker) OwnsProject(ctx context.Context, projectID, userID string) (bool, error) {
	if projectID == "" || userID == "" {
		return false, nil
	}
	project, err := c.store.GetProject(ctx, projectID)
	if err != nil {
		return false, err
	}
	return project != nil && project.OwnerID == userID, nil
}

// Authorize fails closed: a negative answer is ErrForbidden and a checker error is returned
// wrapped, never treated as permission
func Authorize(ctx context.Context, c OwnershipChecker, projectID, userID string) error {
	ok, err := c.OwnsProject(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to check ownership of project %s: %w", projectID, err)
	}
	if !ok {
		return domain.Errorf(domain.ErrForbidden, "user %q does not own project %s", userID, projectID)
	}
	return nil
}
