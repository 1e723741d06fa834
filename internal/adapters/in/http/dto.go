package http

import (
	"time"

	"freightdesk/internal/core/application/usecases/queries"
	"freightdesk/internal/core/domain/model/kernel"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type CargoDTO struct {
	Description   string  `json:"description"`
	WeightKg      float64 `json:"weight_kg"`
	VolumeCbm     float64 `json:"volume_cbm,omitempty"`
	ContainerType string  `json:"container_type,omitempty"`
}

type CreateOrderRequest struct {
	OriginPort        string    `json:"origin_port"`
	DestinationPort   string    `json:"destination_port"`
	Cargo             CargoDTO  `json:"cargo"`
	QuotationDeadline time.Time `json:"quotation_deadline"`
}

type InviteRequest struct {
	ForwarderID string `json:"forwarder_id"`
}

type RespondInvitationRequest struct {
	Accept bool `json:"accept"`
}

type QuoteRequest struct {
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	TransitDays int       `json:"transit_days"`
	ValidUntil  time.Time `json:"valid_until"`
	Notes       string    `json:"notes"`
	Reason      string    `json:"reason"`
}

type StatusChangeRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type RatingRequest struct {
	Scores      map[string]int `json:"scores"`
	Comment     string         `json:"comment"`
	ForwarderID string         `json:"forwarder_id"`
}

type AcceptInvoiceRequest struct {
	OrderID string `json:"order_id"`
}

type QuoteDTO struct {
	ID          string    `json:"id"`
	ForwarderID string    `json:"forwarder_id"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	TransitDays int       `json:"transit_days"`
	ValidUntil  time.Time `json:"valid_until"`
	Notes       string    `json:"notes"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type InvoiceDTO struct {
	ID         string     `json:"id"`
	Path       string     `json:"path"`
	FileName   string     `json:"file_name"`
	Locked     bool       `json:"locked"`
	AcceptedAt *time.Time `json:"accepted_at"`
	UploadedAt time.Time  `json:"uploaded_at"`
}

type OrderDetailsResponse struct {
	ID                string      `json:"id"`
	Reference         string      `json:"reference"`
	ExporterID        string      `json:"exporter_id"`
	OriginPort        string      `json:"origin_port"`
	DestinationPort   string      `json:"destination_port"`
	Cargo             CargoDTO    `json:"cargo"`
	Status            string      `json:"status"`
	SelectedQuoteID   *string     `json:"selected_quote_id"`
	QuotationDeadline time.Time   `json:"quotation_deadline"`
	CreatedAt         time.Time   `json:"created_at"`
	Quotes            []QuoteDTO  `json:"quotes"`
	Invoice           *InvoiceDTO `json:"invoice"`
}

type AmendmentDTO struct {
	ID               string    `json:"id"`
	PreviousPrice    string    `json:"previous_price"`
	PreviousCurrency string    `json:"previous_currency"`
	NewPrice         string    `json:"new_price"`
	NewCurrency      string    `json:"new_currency"`
	Reason           string    `json:"reason"`
	CreatedAt        time.Time `json:"created_at"`
}

type UploadedInvoiceResponse struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

func orderDetailsResponse(d *queries.GetOrderDetailsQueryResponse) OrderDetailsResponse {
	resp := OrderDetailsResponse{
		ID:              d.ID.String(),
		Reference:       d.Reference,
		ExporterID:      d.ExporterID.String(),
		OriginPort:      d.OriginPort,
		DestinationPort: d.DestinationPort,
		Cargo: CargoDTO{
			Description:   d.Cargo.Description,
			WeightKg:      d.Cargo.WeightKg,
			VolumeCbm:     d.Cargo.VolumeCbm,
			ContainerType: d.Cargo.ContainerType,
		},
		Status:            d.Status,
		QuotationDeadline: d.QuotationDeadline,
		CreatedAt:         d.CreatedAt,
		Quotes:            make([]QuoteDTO, len(d.Quotes)),
	}

	if d.SelectedQuoteID != nil {
		id := d.SelectedQuoteID.String()
		resp.SelectedQuoteID = &id
	}

	for i, q := range d.Quotes {
		resp.Quotes[i] = QuoteDTO{
			ID:          q.ID.String(),
			ForwarderID: q.ForwarderID.String(),
			Price:       amount(q.Price),
			Currency:    q.Price.Currency(),
			TransitDays: q.TransitDays,
			ValidUntil:  q.ValidUntil,
			Notes:       q.Notes,
			Status:      q.Status,
			UpdatedAt:   q.UpdatedAt,
		}
	}

	if inv := d.Invoice; inv != nil {
		resp.Invoice = &InvoiceDTO{
			ID:         inv.DocumentID.String(),
			Path:       inv.Path,
			FileName:   inv.FileName,
			Locked:     inv.Locked,
			AcceptedAt: inv.AcceptedAt,
			UploadedAt: inv.UploadedAt,
		}
	}
	return resp
}

func amendmentDTOs(views []queries.AmendmentView) []AmendmentDTO {
	out := make([]AmendmentDTO, len(views))
	for i, v := range views {
		out[i] = AmendmentDTO{
			ID:               v.ID.String(),
			PreviousPrice:    amount(v.PreviousPrice),
			PreviousCurrency: v.PreviousPrice.Currency(),
			NewPrice:         amount(v.NewPrice),
			NewCurrency:      v.NewPrice.Currency(),
			Reason:           v.Reason,
			CreatedAt:        v.CreatedAt,
		}
	}
	return out
}

func amount(m kernel.Money) string {
	return m.Amount().StringFixed(2)
}
