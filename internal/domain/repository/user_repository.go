package repository

import (
	"context"
	"time"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para operadores.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
	UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error
}
