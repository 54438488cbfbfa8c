package repository

import (
	"context"

	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// ActivityRepository bitácora de actividad.
type ActivityRepository interface {
	Create(ctx context.Context, entry *entity.ActivityLog) error
}
