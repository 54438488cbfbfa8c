package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/redcobro-api/internal/application/dto"
	"github.com/jhoicas/redcobro-api/internal/domain"
	dombilling "github.com/jhoicas/redcobro-api/internal/domain/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/pkg/clock"
)

// CollectionsUseCase listas de trabajo del cobrador: vencen hoy, en gracia y morosos.
type CollectionsUseCase struct {
	accounts repository.AccountRepository
	clock    clock.Clock
}

// NewCollectionsUseCase construye el caso de uso.
func NewCollectionsUseCase(accounts repository.AccountRepository, clk clock.Clock) *CollectionsUseCase {
	return &CollectionsUseCase{accounts: accounts, clock: clk}
}

// View arma las tres listas para la fecha de hoy. status y dueDay acotan la ruta del cobrador.
func (uc *CollectionsUseCase) View(ctx context.Context, companyID, status string, dueDay int) (*dto.CollectionsViewDTO, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "" && !validStatus(status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	}
	if dueDay != 0 && !dombilling.ValidDueDay(dueDay) {
		return nil, domain.ErrInvalidDueDay
	}
	accounts, err := uc.accounts.List(ctx, companyID, repository.AccountFilter{Status: status, DueDay: dueDay})
	if err != nil {
		return nil, fmt.Errorf("collections: listar cuentas: %w", err)
	}
	today := uc.clock.Now()
	view := dombilling.BuildCollections(accounts, today)
	return &dto.CollectionsViewDTO{
		Date:             today.Format("2006-01-02"),
		DueToday:         toCollectionList(view.DueToday),
		InGrace:          toCollectionList(view.InGrace),
		Arrears:          toCollectionList(view.Arrears),
		TotalOutstanding: view.TotalOutstanding,
	}, nil
}

func toCollectionList(entries []dombilling.CollectionEntry) dto.CollectionListDTO {
	items := make([]dto.CollectionEntryDTO, 0, len(entries))
	for i := range entries {
		items = append(items, dto.CollectionEntryDTO{
			Account:  dto.NewAccountResponse(&entries[i].Account),
			DaysLate: entries[i].DaysLate,
		})
	}
	return dto.CollectionListDTO{
		Count:       len(entries),
		Outstanding: dombilling.EntriesOutstanding(entries),
		Items:       items,
	}
}
