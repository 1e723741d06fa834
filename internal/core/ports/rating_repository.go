package ports

import (
	"context"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/rating"
)

// RatingRepository persists company ratings. Each (order, rater) pair is stored once.
type RatingRepository interface {
	Add(ctx context.Context, r *rating.Rating) error
	Exists(ctx context.Context, orderID, raterID kernel.UUID) (bool, error)
}
