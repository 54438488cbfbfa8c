package billing

import (
	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

var allowedTransitions = map[string][]string{
	entity.AccountStatusActive:    {entity.AccountStatusSuspended, entity.AccountStatusCut, entity.AccountStatusCanceled},
	entity.AccountStatusSuspended: {entity.AccountStatusActive, entity.AccountStatusCut, entity.AccountStatusCanceled},
	entity.AccountStatusCut:       {entity.AccountStatusActive, entity.AccountStatusCanceled},
}

// TransitionStatus valida el cambio de estado manual (suspender, cortar, reactivar, cancelar).
func TransitionStatus(acc *entity.Account, to string) error {
	if acc.IsCanceled() {
		return domain.ErrAccountCanceled
	}
	for _, s := range allowedTransitions[acc.Status] {
		if s == to {
			return nil
		}
	}
	return domain.ErrInvalidTransition
}
