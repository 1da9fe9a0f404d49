package users

import "context"

// Repository persists users. Finders return nil, nil when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	// Save inserts when user.ID is zero and assigns the new id, otherwise overwrites the record.
	Save(ctx context.Context, user *User) error
	DeleteByID(ctx context.Context, id int64) error
	// AdjustFollowers adds delta to the follower count in one atomic step,
	// never going below zero. Returns the updated user, or nil if absent.
	AdjustFollowers(ctx context.Context, id int64, delta int) (*User, error)
}
