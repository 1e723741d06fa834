package quoterepo

import (
	"context"
	"errors"
	"time"

	"freightdesk/internal/adapters/out/postgres/pgerrs"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/core/domain/model/quote"
	"freightdesk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuoteRepository implements ports.QuoteRepository using GORM.
type GormQuoteRepository struct {
	db *gorm.DB
}

func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Add inserts a quote. A second ACTIVE quote by the same forwarder on the same order
// violates uq_quotes_one_active_per_forwarder and is reported as a conflict.
func (r *GormQuoteRepository) Add(ctx context.Context, q *quote.Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}

	dto := fromDomain(q)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "quote", "already active for this forwarder")
	}
	return nil
}

// Update writes terms and status. A second SELECTED quote on an order is a conflict.
func (r *GormQuoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}

	dto := fromDomain(q)
	result := r.db.WithContext(ctx).Model(&QuoteDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"price":        dto.Price,
		"currency":     dto.Currency,
		"transit_days": dto.TransitDays,
		"valid_until":  dto.ValidUntil,
		"notes":        dto.Notes,
		"status":       dto.Status,
		"updated_at":   dto.UpdatedAt,
	})
	if result.Error != nil {
		return pgerrs.Conflict(result.Error, "quote", "conflicts with another quote on the order")
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("quote", q.ID().String())
	}
	return nil
}

// Get retrieves a quote by ID.
func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto QuoteDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByOrder returns the order's quotes, oldest first.
func (r *GormQuoteRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*quote.Quote, error) {
	var dtos []QuoteDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// FindActive returns the forwarder's ACTIVE quote on the order or nil.
func (r *GormQuoteRepository) FindActive(ctx context.Context, orderID, forwarderID kernel.UUID) (*quote.Quote, error) {
	var dtos []QuoteDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND forwarder_company_id = ? AND status = ?",
			orderID.Bytes(), forwarderID.Bytes(), quote.Active.String()).
		Limit(1).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return nil, nil
	}
	return toDomain(dtos[0])
}

func (r *GormQuoteRepository) CountActive(ctx context.Context, orderID kernel.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&QuoteDTO{}).
		Where("order_id = ? AND status = ?", orderID.Bytes(), quote.Active.String()).
		Count(&count).Error
	return count, err
}

// ListLapsed returns ACTIVE quotes whose valid_until has passed on orders still taking
// or reviewing quotes. The parent order rows are locked for the rest of the transaction;
// orders already locked by a running transition are skipped until the next sweep.
func (r *GormQuoteRepository) ListLapsed(ctx context.Context, now time.Time, limit int) ([]*quote.Quote, error) {
	var dtos []QuoteDTO
	if err := r.db.WithContext(ctx).
		Joins("JOIN orders ON orders.id = quotes.order_id").
		Where("quotes.status = ? AND quotes.valid_until <= ? AND orders.status IN ?",
			quote.Active.String(), now, []string{order.Open.String(), order.Pending.String()}).
		Clauses(clause.Locking{
			Strength: "UPDATE",
			Table:    clause.Table{Name: "orders"},
			Options:  "SKIP LOCKED",
		}).
		Order("quotes.valid_until").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// AddAmendment appends a price amendment row.
func (r *GormQuoteRepository) AddAmendment(ctx context.Context, amendment quote.Amendment) error {
	dto := amendmentFromDomain(amendment)
	return r.db.WithContext(ctx).Create(&dto).Error
}
