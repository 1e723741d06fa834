// Package companyrepo resolves callers into company actors. Companies and memberships are
// managed outside the marketplace, so this repository only reads.
package companyrepo

import (
	"context"
	"errors"

	"freightdesk/internal/core/domain/model/company"
	"freightdesk/internal/core/domain/model/kernel"
	"freightdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type membershipRow struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CompanyID   uuid.UUID
	Role        string
	CompanyType string
}

// GormCompanyRepository implements ports.CompanyRepository using GORM.
type GormCompanyRepository struct {
	db *gorm.DB
}

func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// GetActor loads userID's membership in companyID.
func (r *GormCompanyRepository) GetActor(ctx context.Context, userID, companyID kernel.UUID) (company.Actor, error) {
	var row membershipRow
	err := r.db.WithContext(ctx).
		Table("company_members AS m").
		Select("m.id, m.user_id, m.company_id, m.role, c.type AS company_type").
		Joins("JOIN companies AS c ON c.id = m.company_id").
		Where("m.user_id = ? AND m.company_id = ?", userID.Bytes(), companyID.Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return company.Actor{}, errs.NewObjectNotFoundError("membership", userID.String())
		}
		return company.Actor{}, err
	}

	membershipID, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return company.Actor{}, err
	}
	return company.NewActor(userID, companyID, membershipID, company.Role(row.Role), company.Type(row.CompanyType))
}

// GetType returns the company's marketplace side.
func (r *GormCompanyRepository) GetType(ctx context.Context, companyID kernel.UUID) (company.Type, error) {
	var companyType string
	err := r.db.WithContext(ctx).
		Table("companies").
		Select("type").
		Where("id = ?", companyID.Bytes()).
		Take(&companyType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.NewObjectNotFoundError("company", companyID.String())
		}
		return "", err
	}
	return company.Type(companyType), nil
}
