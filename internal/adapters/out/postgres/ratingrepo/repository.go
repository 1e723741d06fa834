// Package ratingrepo stores company ratings left after an order closes.
package ratingrepo

import (
	"context"
	"time"

	"freightdesk/internal/adapters/out/postgres/pgerrs"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/rating"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RatingDTO is a row of company_ratings.
type RatingDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid"`
	RaterCompanyID uuid.UUID `gorm:"type:uuid"`
	RateeCompanyID uuid.UUID `gorm:"type:uuid"`
	Direction      string
	Scores         datatypes.JSONType[rating.Scores] `gorm:"type:jsonb"`
	Comment        string
	CreatedBy      uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time `gorm:"autoCreateTime:false"`
}

func (RatingDTO) TableName() string {
	return "company_ratings"
}

// GormRatingRepository implements ports.RatingRepository using GORM.
type GormRatingRepository struct {
	db *gorm.DB
}

func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// Add inserts a rating. A second rating by the same company on the same order is a conflict.
func (r *GormRatingRepository) Add(ctx context.Context, rt *rating.Rating) error {
	if err := rt.Validate(); err != nil {
		return err
	}

	dto := RatingDTO{
		ID:             rt.ID().Bytes(),
		OrderID:        rt.OrderID().Bytes(),
		RaterCompanyID: rt.RaterID().Bytes(),
		RateeCompanyID: rt.RateeID().Bytes(),
		Direction:      string(rt.Direction()),
		Scores:         datatypes.NewJSONType(rt.Scores()),
		Comment:        rt.Comment(),
		CreatedBy:      rt.CreatedBy().Bytes(),
		CreatedAt:      rt.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "rating", "was already submitted for this order")
	}
	return nil
}

// Exists reports whether raterID already rated on orderID.
func (r *GormRatingRepository) Exists(ctx context.Context, orderID, raterID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RatingDTO{}).
		Where("order_id = ? AND rater_company_id = ?", orderID.Bytes(), raterID.Bytes()).
		Count(&count).Error
	return count > 0, err
}
