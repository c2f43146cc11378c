package org

import "context"

// Repository reads the organization profile from its backing store
type Repository interface {
	// Get returns the current profile or an error marked ErrNotFound when no row exists
	Get(ctx context.Context) (*Profile, error)
}
