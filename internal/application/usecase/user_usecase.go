package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/pkg/clock"
)

// UserUseCase administración de operadores de una empresa (solo admin).
type UserUseCase struct {
	repo  repository.UserRepository
	clock clock.Clock
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, clk clock.Clock) *UserUseCase {
	return &UserUseCase{repo: repo, clock: clk}
}

// List operadores de la empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string) ([]dto.UserResponse, error) {
	users, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *dto.NewUserResponse(u))
	}
	return out, nil
}

// SetStatus activa o desactiva un operador. Un admin no puede desactivarse a sí mismo
// para que la empresa nunca quede sin acceso.
func (uc *UserUseCase) SetStatus(ctx context.Context, companyID, actorID, id string, in dto.UserStatusRequest) (*dto.UserResponse, error) {
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status != entity.UserStatusActive && status != entity.UserStatusInactive {
		return nil, fmt.Errorf("%w: estado de operador %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	if id == actorID && status == entity.UserStatusInactive {
		return nil, fmt.Errorf("%w: no puede desactivar su propio usuario", domain.ErrInvalidInput)
	}
	user, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status == status {
		return dto.NewUserResponse(user), nil
	}
	now := uc.clock.Now()
	if err := uc.repo.UpdateStatus(ctx, companyID, id, status, now); err != nil {
		return nil, err
	}
	user.Status, user.UpdatedAt = status, now
	return dto.NewUserResponse(user), nil
}
