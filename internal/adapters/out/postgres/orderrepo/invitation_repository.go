package orderrepo

import (
	"context"
	"errors"

	"freightdesk/internal/adapters/out/postgres/pgerrs"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"
	"freightdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInvitationRepository implements ports.InvitationRepository on order_forwarders.
type GormInvitationRepository struct {
	db *gorm.DB
}

func NewGormInvitationRepository(db *gorm.DB) *GormInvitationRepository {
	return &GormInvitationRepository{db: db}
}

func (r *GormInvitationRepository) Add(ctx context.Context, invitation *order.Invitation) error {
	if err := invitation.Validate(); err != nil {
		return err
	}

	dto := invitationFromDomain(invitation)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Conflict(err, "invitation", "already exists for this forwarder")
	}
	return nil
}

func (r *GormInvitationRepository) Update(ctx context.Context, invitation *order.Invitation) error {
	if err := invitation.Validate(); err != nil {
		return err
	}

	dto := invitationFromDomain(invitation)
	result := r.db.WithContext(ctx).Model(&InvitationDTO{}).
		Where("order_id = ? AND forwarder_company_id = ?", dto.OrderID, dto.ForwarderCompanyID).
		Update("status", dto.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invitation", invitation.ForwarderID().String())
	}
	return nil
}

func (r *GormInvitationRepository) Find(ctx context.Context, orderID, forwarderID kernel.UUID) (*order.Invitation, error) {
	var dto InvitationDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND forwarder_company_id = ?", orderID.Bytes(), forwarderID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return invitationToDomain(dto)
}

func (r *GormInvitationRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.Invitation, error) {
	var dtos []InvitationDTO
	if err := r.db.WithContext(ctx).Order("invited_at").Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	invitations := make([]*order.Invitation, 0, len(dtos))
	for _, dto := range dtos {
		inv, err := invitationToDomain(dto)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	return invitations, nil
}
