package repository

import (
	"context"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// CloseRepository puerto de persistencia para cierres quincenales (append-only).
type CloseRepository interface {
	Create(ctx context.Context, c *entity.BiweeklyClose) error
	GetByID(ctx context.Context, companyID, id string) (*entity.BiweeklyClose, error)
	GetByPeriod(ctx context.Context, companyID, periodLabel string) (*entity.BiweeklyClose, error)
	// List historial más antiguo primero (gráficas de tendencia).
	List(ctx context.Context, companyID string) ([]*entity.BiweeklyClose, error)
	Last(ctx context.Context, companyID string) (*entity.BiweeklyClose, error)
}
