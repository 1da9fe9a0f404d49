package goals

import "context"

// Repository is the persistence contract for goals.
// FindByID returns nil, nil when no goal has the id.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Goal, error)
	FindByUser(ctx context.Context, userID string) ([]Goal, error)
	FindByUserAndCompleted(ctx context.Context, userID string, completed bool) ([]Goal, error)
	// Save inserts the goal when its ID is zero and assigns the new ID;
	// otherwise it overwrites the stored row.
	Save(ctx context.Context, goal *Goal) error
	// DeleteByID does not report whether a goal was removed.
	DeleteByID(ctx context.Context, id int64) error
}
