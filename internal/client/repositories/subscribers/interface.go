// Package subscribers persists the newsletter contact list as one JSON
// array under "crown_subscribers".
package subscribers

import (
	"context"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
)

const Key = "crown_subscribers"

type Repository interface {
	All(ctx context.Context) ([]models.Subscriber, error)
	Save(ctx context.Context, all []models.Subscriber) error
}
