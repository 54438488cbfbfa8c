package billing

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/pkg/logger"
)

// Purger almacén que puede liberar entradas vencidas (caché de idempotencia en memoria).
type Purger interface {
	Purge() int
}

// Scheduler tarea periódica por empresa activa: cargos mensuales pendientes y
// cierre de las quincenas terminadas que aún no tienen cierre. Ambas operaciones
// son idempotentes, así que repetir una vuelta no cambia nada.
type Scheduler struct {
	companies repository.CompanyRepository
	charges   *ChargeUseCase
	closing   *ClosingUseCase
	purger    Purger
	interval  time.Duration
	log       *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler construye el scheduler. purger puede ser nil.
func NewScheduler(
	companies repository.CompanyRepository,
	charges *ChargeUseCase,
	closing *ClosingUseCase,
	purger Purger,
	interval time.Duration,
	log *logger.Logger,
) *Scheduler {
	return &Scheduler{
		companies: companies,
		charges:   charges,
		closing:   closing,
		purger:    purger,
		interval:  interval,
		log:       log.Component("scheduler"),
	}
}

// Start lanza la goroutine; ejecuta una vuelta de inmediato y luego una por intervalo.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop(ctx)
	s.log.Info().Dur("interval", s.interval).Msg("scheduler iniciado")
}

// Stop detiene el ticker y espera a que termine la vuelta en curso.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.cancel = nil
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce una vuelta completa. Un error en una empresa no detiene a las demás.
func (s *Scheduler) RunOnce(ctx context.Context) {
	companies, err := s.companies.ListActive(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("listar empresas")
		return
	}
	for _, c := range companies {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.charges.Run(ctx, c.ID, ""); err != nil {
			s.log.Error().Err(err).Str("company_id", c.ID).Msg("cargos mensuales")
		}
		if _, err := s.closing.CloseElapsed(ctx, c.ID); err != nil {
			s.log.Error().Err(err).Str("company_id", c.ID).Msg("cierre quincenal")
		}
	}
	if s.purger != nil {
		if n := s.purger.Purge(); n > 0 {
			s.log.Debug().Int("purged", n).Msg("llaves de idempotencia vencidas")
		}
	}
}
