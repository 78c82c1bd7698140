package users

import (
	"context"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
	"github.com/dmitrijs2005/crownstore/internal/client/store"
)

// Key is the store key of the user collection.
const Key = "crown_users"

type Repository interface {
	All(ctx context.Context) ([]models.User, error)

	// FindByEmail matches case-insensitively after trimming.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Save replaces the whole collection.
	Save(ctx context.Context, all []models.User) error

	// SaveMutation is Save in store.Repository.Apply form, for writes that
	// must land together with other documents.
	SaveMutation(all []models.User) (store.Mutation, error)
}
