package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freightdesk/internal/core/domain/model/invoice"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GetOrderDetailsQueryHandler reads the order view straight from the database.
type GetOrderDetailsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailsQueryHandler(db *gorm.DB) GetOrderDetailsQueryHandler {
	return GetOrderDetailsQueryHandler{db: db}
}

// Handle returns NotFound for an unknown order and Forbidden for callers that are neither
// members of the exporter company nor invited forwarders.
func (h GetOrderDetailsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailsQuery,
) (*GetOrderDetailsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	details, err := h.loadOrder(db, query.OrderID())
	if err != nil {
		return nil, err
	}

	actor := query.Actor()
	isExporter := actor.BelongsTo(details.ExporterID)
	if !isExporter {
		var invited int64
		err = db.Raw(`
			SELECT count(*)
			FROM order_forwarders
			WHERE order_id = ? AND forwarder_company_id = ?
		`, query.OrderID().Bytes(), actor.CompanyID().Bytes()).Scan(&invited).Error
		if err != nil {
			return nil, err
		}
		if invited == 0 {
			return nil, errs.NewForbiddenError("view order", "caller's company is not part of the order")
		}
	}

	var forwarderFilter *uuid.UUID
	if !isExporter {
		id := actor.CompanyID().Bytes()
		forwarderFilter = &id
	}
	if details.Quotes, err = h.loadQuotes(db, query.OrderID(), forwarderFilter); err != nil {
		return nil, err
	}

	if details.SelectedQuoteID != nil && (isExporter || h.ownsQuote(details.Quotes, *details.SelectedQuoteID)) {
		if details.Invoice, err = h.loadInvoice(db, *details.SelectedQuoteID); err != nil {
			return nil, err
		}
	}

	return details, nil
}

func (h GetOrderDetailsQueryHandler) loadOrder(db *gorm.DB, orderID kernel.UUID) (*GetOrderDetailsQueryResponse, error) {
	var (
		details         GetOrderDetailsQueryResponse
		id, exporterID  uuid.UUID
		selectedQuoteID uuid.NullUUID
	)

	row := db.Raw(`
		SELECT
			id,
			reference,
			exporter_company_id,
			origin_port,
			destination_port,
			cargo_description,
			cargo_weight_kg,
			cargo_volume_cbm,
			container_type,
			status,
			selected_quote_id,
			quotation_deadline,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&details.Reference,
		&exporterID,
		&details.OriginPort,
		&details.DestinationPort,
		&details.Cargo.Description,
		&details.Cargo.WeightKg,
		&details.Cargo.VolumeCbm,
		&details.Cargo.ContainerType,
		&details.Status,
		&selectedQuoteID,
		&details.QuotationDeadline,
		&details.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	if details.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	if details.ExporterID, err = kernel.UUIDFromBytes(exporterID[:]); err != nil {
		return nil, err
	}
	if selectedQuoteID.Valid {
		selected, idErr := kernel.UUIDFromBytes(selectedQuoteID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		details.SelectedQuoteID = &selected
	}
	details.QuotationDeadline = details.QuotationDeadline.UTC()
	details.CreatedAt = details.CreatedAt.UTC()
	return &details, nil
}

// loadQuotes lists the order's quotes, cheapest first. A non-nil forwarderID restricts the
// list to that forwarder's quotes.
func (h GetOrderDetailsQueryHandler) loadQuotes(db *gorm.DB, orderID kernel.UUID, forwarderID *uuid.UUID) ([]QuoteView, error) {
	quotes := make([]QuoteView, 0)

	stmt := db.Table("quotes").
		Select("id, forwarder_company_id, price, currency, transit_days, valid_until, notes, status, updated_at").
		Where("order_id = ?", orderID.Bytes())
	if forwarderID != nil {
		stmt = stmt.Where("forwarder_company_id = ?", *forwarderID)
	}

	rows, err := stmt.Order("price, created_at").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			view          QuoteView
			id, forwarder uuid.UUID
			amount        decimal.Decimal
			currency      string
		)

		err = rows.Scan(
			&id,
			&forwarder,
			&amount,
			&currency,
			&view.TransitDays,
			&view.ValidUntil,
			&view.Notes,
			&view.Status,
			&view.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if view.ForwarderID, err = kernel.UUIDFromBytes(forwarder[:]); err != nil {
			return nil, err
		}
		if view.Price, err = kernel.NewMoney(amount, currency); err != nil {
			return nil, err
		}
		view.ValidUntil = view.ValidUntil.UTC()
		view.UpdatedAt = view.UpdatedAt.UTC()
		quotes = append(quotes, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (h GetOrderDetailsQueryHandler) loadInvoice(db *gorm.DB, quoteID kernel.UUID) (*InvoiceView, error) {
	var (
		id         uuid.UUID
		path       string
		metadata   datatypes.JSONType[invoice.Metadata]
		uploadedAt time.Time
	)

	err := db.Raw(`
		SELECT id, file_path, metadata, updated_at
		FROM documents
		WHERE entity_type = ? AND entity_id = ? AND metadata ->> 'type' = ?
	`, invoice.EntityQuote, quoteID.Bytes(), invoice.TypeFinalInvoice).Row().Scan(&id, &path, &metadata, &uploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	documentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	data := metadata.Data()
	return &InvoiceView{
		DocumentID: documentID,
		Path:       path,
		FileName:   data.FileName,
		Locked:     data.Locked,
		AcceptedAt: data.AcceptedAt,
		UploadedAt: uploadedAt.UTC(),
	}, nil
}

func (h GetOrderDetailsQueryHandler) ownsQuote(quotes []QuoteView, quoteID kernel.UUID) bool {
	for _, q := range quotes {
		if q.ID.IsEqual(quoteID) {
			return true
		}
	}
	return false
}
