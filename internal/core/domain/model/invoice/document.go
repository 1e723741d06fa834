package invoice

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"
	"freightdesk/internal/pkg/guard"
)

// ErrDocumentIsNotConstructed is returned when a Document was not created via NewFinalInvoice or RestoreDocument.
var ErrDocumentIsNotConstructed = errors.New("Document must be created via NewFinalInvoice constructor")

const (
	// TypeFinalInvoice is the metadata type of the billing document a forwarder submits.
	TypeFinalInvoice = "FINAL_INVOICE"

	// EntityQuote is the polymorphic entity type final invoices attach to.
	EntityQuote = "quote"

	maxFileSize = 20 << 20
)

var allowedExtensions = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// Metadata is stored as a JSON document next to the file reference.
type Metadata struct {
	Type        string     `json:"type"`
	Locked      bool       `json:"locked"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
	AcceptedBy  string     `json:"accepted_by,omitempty"`
	FileName    string     `json:"file_name,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	SizeBytes   int64      `json:"size_bytes,omitempty"`
	UploadedBy  string     `json:"uploaded_by,omitempty"`
}

// File describes an uploaded object before it is stored.
type File struct {
	Name        string
	ContentType string
	Size        int64
}

// Extension returns the lower-cased extension of the file name or an error when the type is
// not accepted for invoices.
func (f File) Extension() (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(f.Name), "."))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("file", fmt.Errorf("extension %q is not accepted", ext))
	}
	return ext, nil
}

func (f File) validate() error {
	var validationErrs []error
	if strings.TrimSpace(f.Name) == "" {
		validationErrs = append(validationErrs, errs.NewValueIsRequiredError("file name"))
	} else if _, err := f.Extension(); err != nil {
		validationErrs = append(validationErrs, err)
	}
	if f.Size <= 0 || f.Size > maxFileSize {
		validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError("file size", f.Size, 1, maxFileSize))
	}
	return errors.Join(validationErrs...)
}

// ContentTypeFor returns the canonical content type for an accepted extension.
func ContentTypeFor(ext string) string {
	return allowedExtensions[ext]
}

// Prefix is the storage folder holding every object for one quote's invoice.
func Prefix(orderReference string, quoteID kernel.UUID) string {
	return fmt.Sprintf("invoices/%s/%s/", orderReference, quoteID.ShortID())
}

// Path is the deterministic object key of a quote's final invoice.
func Path(orderReference string, quoteID kernel.UUID, ext string) string {
	return Prefix(orderReference, quoteID) + "document." + ext
}

// Document is a FINAL_INVOICE attached to a selected quote.
//
// Once locked the document never changes again.
type Document struct {
	id        kernel.UUID
	quoteID   kernel.UUID
	path      string
	metadata  Metadata
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewFinalInvoice creates an unlocked FINAL_INVOICE for quoteID stored at objectPath.
func NewFinalInvoice(id, quoteID kernel.UUID, objectPath string, file File, uploadedBy kernel.UUID, now time.Time) (*Document, error) {
	var pathErr error
	if strings.TrimSpace(objectPath) == "" {
		pathErr = errs.NewValueIsRequiredError("file path")
	}
	if err := errors.Join(id.Validate(), quoteID.Validate(), uploadedBy.Validate(), file.validate(), pathErr); err != nil {
		return nil, err
	}

	return &Document{
		id:        id,
		quoteID:   quoteID,
		path:      objectPath,
		metadata:  newMetadata(file, uploadedBy),
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreDocument rebuilds a document from persistence.
func RestoreDocument(id, quoteID kernel.UUID, objectPath string, metadata Metadata, createdAt, updatedAt time.Time) (*Document, error) {
	var typeErr error
	if metadata.Type != TypeFinalInvoice {
		typeErr = errs.NewValueIsInvalidErrorWithCause("document type", fmt.Errorf("%q is not %s", metadata.Type, TypeFinalInvoice))
	}
	if err := errors.Join(id.Validate(), quoteID.Validate(), typeErr); err != nil {
		return nil, err
	}

	return &Document{
		id:        id,
		quoteID:   quoteID,
		path:      objectPath,
		metadata:  metadata,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (d *Document) Validate() error {
	if d == nil {
		return ErrDocumentIsNotConstructed
	}
	return d.guard.Validate(ErrDocumentIsNotConstructed)
}

func (d *Document) ID() kernel.UUID      { return d.id }
func (d *Document) QuoteID() kernel.UUID { return d.quoteID }
func (d *Document) Path() string         { return d.path }
func (d *Document) Metadata() Metadata   { return d.metadata }
func (d *Document) IsLocked() bool       { return d.metadata.Locked }
func (d *Document) CreatedAt() time.Time { return d.createdAt }
func (d *Document) UpdatedAt() time.Time { return d.updatedAt }

// Replace points the document at a newly uploaded file.
func (d *Document) Replace(objectPath string, file File, uploadedBy kernel.UUID, now time.Time) error {
	if d.metadata.Locked {
		return errs.NewConflictError("final invoice", "is already accepted and locked")
	}
	if err := errors.Join(file.validate(), uploadedBy.Validate()); err != nil {
		return err
	}
	d.path = objectPath
	d.metadata = newMetadata(file, uploadedBy)
	d.updatedAt = now.UTC()
	return nil
}

// Accept locks the invoice. It reports false without touching anything when the invoice
// was already locked.
func (d *Document) Accept(acceptedBy kernel.UUID, now time.Time) (bool, error) {
	if err := acceptedBy.Validate(); err != nil {
		return false, err
	}
	if d.metadata.Locked {
		return false, nil
	}

	at := now.UTC()
	d.metadata.Locked = true
	d.metadata.AcceptedAt = &at
	d.metadata.AcceptedBy = acceptedBy.String()
	d.updatedAt = at
	return true, nil
}

func newMetadata(file File, uploadedBy kernel.UUID) Metadata {
	ext, _ := file.Extension()
	return Metadata{
		Type:        TypeFinalInvoice,
		FileName:    path.Base(file.Name),
		ContentType: ContentTypeFor(ext),
		SizeBytes:   file.Size,
		UploadedBy:  uploadedBy.String(),
	}
}
