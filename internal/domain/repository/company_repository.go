package repository

import (
	"context"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (ISP).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Company, error)
	// ListActive empresas activas (el scheduler recorre todas).
	ListActive(ctx context.Context) ([]*entity.Company, error)
}
