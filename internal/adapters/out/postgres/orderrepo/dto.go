// Package orderrepo persists order aggregates, forwarder invitations and the order status
// history with GORM.
package orderrepo

import (
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Reference         string    `gorm:"uniqueIndex"`
	ExporterCompanyID uuid.UUID `gorm:"type:uuid"`
	OriginPort        string
	DestinationPort   string
	Cargo             CargoDTO `gorm:"embedded;embeddedPrefix:cargo_"`
	ContainerType     string
	Status            string
	SelectedQuoteID   *uuid.UUID `gorm:"type:uuid"`
	QuotationDeadline time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CargoDTO is the embedded cargo description of an order row.
type CargoDTO struct {
	Description string
	WeightKg    float64
	VolumeCbm   float64
}

// InvitationDTO is a row of order_forwarders.
type InvitationDTO struct {
	OrderID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ForwarderCompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status             string
	InvitedAt          time.Time
}

func (InvitationDTO) TableName() string {
	return "order_forwarders"
}

// StatusChangeDTO is a row of order_status_history.
type StatusChangeDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid"`
	FromStatus  string
	ToStatus    string
	ActorUserID uuid.UUID `gorm:"type:uuid"`
	Reason      string
	ChangedAt   time.Time
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	var selectedQuoteID *uuid.UUID
	if id := o.SelectedQuote(); id != nil {
		raw := id.Bytes()
		selectedQuoteID = &raw
	}

	cargo := o.Cargo()
	return OrderDTO{
		ID:                o.ID().Bytes(),
		Reference:         o.Reference(),
		ExporterCompanyID: o.ExporterID().Bytes(),
		OriginPort:        o.OriginPort(),
		DestinationPort:   o.DestinationPort(),
		Cargo: CargoDTO{
			Description: cargo.Description,
			WeightKg:    cargo.WeightKg,
			VolumeCbm:   cargo.VolumeCbm,
		},
		ContainerType:     cargo.ContainerType,
		Status:            o.Status().String(),
		SelectedQuoteID:   selectedQuoteID,
		QuotationDeadline: o.QuotationDeadline(),
		CreatedAt:         o.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	exporterID, err := kernel.UUIDFromBytes(dto.ExporterCompanyID[:])
	if err != nil {
		return nil, err
	}

	var selectedQuoteID *kernel.UUID
	if dto.SelectedQuoteID != nil {
		qID, quoteErr := kernel.UUIDFromBytes((*dto.SelectedQuoteID)[:])
		if quoteErr != nil {
			return nil, quoteErr
		}
		selectedQuoteID = &qID
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	cargo := order.Cargo{
		Description:   dto.Cargo.Description,
		WeightKg:      dto.Cargo.WeightKg,
		VolumeCbm:     dto.Cargo.VolumeCbm,
		ContainerType: dto.ContainerType,
	}

	return order.RestoreOrder(id, dto.Reference, exporterID, dto.OriginPort, dto.DestinationPort,
		cargo, status, selectedQuoteID, dto.QuotationDeadline.UTC(), dto.CreatedAt.UTC())
}

func invitationFromDomain(inv *order.Invitation) InvitationDTO {
	return InvitationDTO{
		OrderID:            inv.OrderID().Bytes(),
		ForwarderCompanyID: inv.ForwarderID().Bytes(),
		Status:             string(inv.Status()),
		InvitedAt:          inv.InvitedAt(),
	}
}

func invitationToDomain(dto InvitationDTO) (*order.Invitation, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	forwarderID, err := kernel.UUIDFromBytes(dto.ForwarderCompanyID[:])
	if err != nil {
		return nil, err
	}
	return order.RestoreInvitation(orderID, forwarderID, order.InvitationStatus(dto.Status), dto.InvitedAt.UTC())
}

func statusChangeFromDomain(change order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:          change.ID.Bytes(),
		OrderID:     change.OrderID.Bytes(),
		FromStatus:  change.From.String(),
		ToStatus:    change.To.String(),
		ActorUserID: change.ActorID.Bytes(),
		Reason:      change.Reason,
		ChangedAt:   change.ChangedAt,
	}
}
