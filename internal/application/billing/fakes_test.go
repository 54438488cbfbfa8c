package billing_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/redcobro-api/internal/application/billing"
	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
	"github.com/jhoicas/redcobro-api/internal/infrastructure/idempotency"
	"github.com/jhoicas/redcobro-api/pkg/clock"
	"github.com/jhoicas/redcobro-api/pkg/logger"
)

// ── Almacén en memoria ────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	companies map[string]entity.Company
	plans     map[string]entity.Plan
	accounts  map[string]entity.Account
	payments  []entity.Payment
	closes    []entity.BiweeklyClose
	activity  []entity.ActivityLog
	locks     []string // candados de tabla pedidos, en orden
}

func newMemStore() *memStore {
	return &memStore{
		companies: map[string]entity.Company{},
		plans:     map[string]entity.Plan{},
		accounts:  map[string]entity.Account{},
	}
}

func (s *memStore) snapshot() *memStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := newMemStore()
	for k, v := range s.companies {
		cp.companies[k] = v
	}
	for k, v := range s.plans {
		cp.plans[k] = v
	}
	for k, v := range s.accounts {
		cp.accounts[k] = v
	}
	cp.payments = append([]entity.Payment(nil), s.payments...)
	cp.closes = append([]entity.BiweeklyClose(nil), s.closes...)
	cp.activity = append([]entity.ActivityLog(nil), s.activity...)
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies, s.plans, s.accounts = from.companies, from.plans, from.accounts
	s.payments, s.closes, s.activity = from.payments, from.closes, from.activity
}

// ── TxRunner: serializa y revierte el estado si fn falla ─────────────────────

type memTx struct {
	mu    sync.Mutex
	store *memStore
}

func (t *memTx) Run(_ context.Context, fn func(repos billing.TxRepos) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	before := t.store.snapshot()
	if err := fn(t.store.repos()); err != nil {
		t.store.restore(before)
		return err
	}
	return nil
}

func (t *memTx) RunSnapshot(ctx context.Context, fn func(repos billing.TxRepos) error) error {
	return t.Run(ctx, fn)
}

func (s *memStore) repos() billing.TxRepos {
	return billing.TxRepos{
		Accounts: &memAccounts{s},
		Payments: &memPayments{s},
		Closes:   &memCloses{s},
		Activity: &memActivity{s},
	}
}

// ── Planes ────────────────────────────────────────────────────────────────────

type memPlans struct{ s *memStore }

func (r *memPlans) Create(_ context.Context, p *entity.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.plans[p.ID] = *p
	return nil
}

func (r *memPlans) GetByID(_ context.Context, companyID, id string) (*entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.plans[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

func (r *memPlans) ListByCompany(_ context.Context, companyID string, onlyActive bool) ([]*entity.Plan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Plan
	for _, p := range r.s.plans {
		if p.CompanyID == companyID && (!onlyActive || p.Active) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPlans) Update(_ context.Context, p *entity.Plan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.plans[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.plans[p.ID] = *p
	return nil
}

// ── Cuentas ───────────────────────────────────────────────────────────────────

type memAccounts struct{ s *memStore }

func (r *memAccounts) Create(_ context.Context, a *entity.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.accounts[a.ID] = *a
	return nil
}

func (r *memAccounts) withPlan(a entity.Account) entity.AccountWithPlan {
	out := entity.AccountWithPlan{Account: a}
	if a.PlanID != nil {
		if p, ok := r.s.plans[*a.PlanID]; ok {
			out.Plan = &p
		}
	}
	return out
}

func (r *memAccounts) GetByID(_ context.Context, companyID, id string) (*entity.AccountWithPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok || a.CompanyID != companyID {
		return nil, nil
	}
	out := r.withPlan(a)
	return &out, nil
}

func (r *memAccounts) GetForUpdate(_ context.Context, companyID, id string) (*entity.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.accounts[id]
	if !ok || a.CompanyID != companyID {
		return nil, nil
	}
	return &a, nil
}

func (r *memAccounts) List(_ context.Context, companyID string, f repository.AccountFilter) ([]entity.AccountWithPlan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.AccountWithPlan
	for _, a := range r.s.accounts {
		if a.CompanyID != companyID || (f.Status != "" && a.Status != f.Status) || (f.DueDay != 0 && a.DueDay != f.DueDay) {
			continue
		}
		out = append(out, r.withPlan(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memAccounts) update(a *entity.Account, apply func(stored *entity.Account)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.accounts[a.ID]
	if !ok || stored.CompanyID != a.CompanyID {
		return domain.ErrNotFound
	}
	apply(&stored)
	stored.UpdatedAt = a.UpdatedAt
	r.s.accounts[a.ID] = stored
	return nil
}

func (r *memAccounts) UpdateProfile(_ context.Context, a *entity.Account) error {
	return r.update(a, func(st *entity.Account) {
		st.Name, st.Phone, st.Address, st.PlanID, st.DueDay = a.Name, a.Phone, a.Address, a.PlanID, a.DueDay
	})
}

func (r *memAccounts) UpdateBalances(_ context.Context, a *entity.Account) error {
	return r.update(a, func(st *entity.Account) {
		st.CurrentDue, st.DeferredDue, st.LastChargedPeriod = a.CurrentDue, a.DeferredDue, a.LastChargedPeriod
	})
}

func (r *memAccounts) UpdateStatus(_ context.Context, a *entity.Account) error {
	return r.update(a, func(st *entity.Account) { st.Status = a.Status })
}

// ── Pagos ─────────────────────────────────────────────────────────────────────

type memPayments struct{ s *memStore }

func (r *memPayments) Create(_ context.Context, p *entity.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.RequestID != "" {
		for _, q := range r.s.payments {
			if q.CompanyID == p.CompanyID && q.RequestID == p.RequestID {
				return fmt.Errorf("request_id %q: %w", p.RequestID, domain.ErrConcurrencyConflict)
			}
		}
	}
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r *memPayments) find(match func(p *entity.Payment) bool) *entity.Payment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.payments {
		if match(&r.s.payments[i]) {
			p := r.s.payments[i]
			return &p
		}
	}
	return nil
}

func (r *memPayments) GetByID(_ context.Context, companyID, id string) (*entity.Payment, error) {
	return r.find(func(p *entity.Payment) bool { return p.CompanyID == companyID && p.ID == id }), nil
}

func (r *memPayments) GetByRequestID(_ context.Context, companyID, requestID string) (*entity.Payment, error) {
	return r.find(func(p *entity.Payment) bool { return p.CompanyID == companyID && p.RequestID == requestID }), nil
}

func (r *memPayments) ListByAccount(_ context.Context, companyID, accountID string) ([]*entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Payment
	for i := len(r.s.payments) - 1; i >= 0; i-- {
		p := r.s.payments[i]
		if p.CompanyID == companyID && p.AccountID == accountID {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *memPayments) ListInRange(_ context.Context, companyID string, from, to time.Time) ([]entity.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []entity.Payment
	for _, p := range r.s.payments {
		if p.CompanyID == companyID && p.CloseID == nil && !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPayments) MarkClosed(_ context.Context, closeID string, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	for i := range r.s.payments {
		if set[r.s.payments[i].ID] {
			id := closeID
			r.s.payments[i].CloseID = &id
		}
	}
	return nil
}

func (r *memPayments) OldestUnclosed(_ context.Context, companyID string) (*time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var oldest *time.Time
	for _, p := range r.s.payments {
		if p.CompanyID == companyID && p.CloseID == nil && (oldest == nil || p.CreatedAt.Before(*oldest)) {
			t := p.CreatedAt
			oldest = &t
		}
	}
	return oldest, nil
}

func (r *memPayments) LockForInsert(context.Context) error { return r.lock("pagos") }

func (r *memPayments) LockForClose(context.Context) error { return r.lock("cierre") }

func (r *memPayments) lock(mode string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locks = append(r.s.locks, mode)
	return nil
}

func (r *memPayments) SumCollected(_ context.Context, companyID string, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, p := range r.s.payments {
		if p.CompanyID == companyID && p.MovesMoney() && !p.CreatedAt.Before(from) && p.CreatedAt.Before(to) {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

// ── Cierres, bitácora y empresas ─────────────────────────────────────────────

type memCloses struct{ s *memStore }

func (r *memCloses) Create(_ context.Context, c *entity.BiweeklyClose) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, x := range r.s.closes {
		if x.CompanyID == c.CompanyID && x.PeriodLabel == c.PeriodLabel {
			return domain.ErrPeriodAlreadyClosed
		}
	}
	r.s.closes = append(r.s.closes, *c)
	return nil
}

func (r *memCloses) find(match func(c *entity.BiweeklyClose) bool) *entity.BiweeklyClose {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := len(r.s.closes) - 1; i >= 0; i-- {
		if match(&r.s.closes[i]) {
			c := r.s.closes[i]
			return &c
		}
	}
	return nil
}

func (r *memCloses) GetByID(_ context.Context, companyID, id string) (*entity.BiweeklyClose, error) {
	return r.find(func(c *entity.BiweeklyClose) bool { return c.CompanyID == companyID && c.ID == id }), nil
}

func (r *memCloses) GetByPeriod(_ context.Context, companyID, label string) (*entity.BiweeklyClose, error) {
	return r.find(func(c *entity.BiweeklyClose) bool { return c.CompanyID == companyID && c.PeriodLabel == label }), nil
}

func (r *memCloses) List(_ context.Context, companyID string) ([]*entity.BiweeklyClose, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.BiweeklyClose
	for _, c := range r.s.closes {
		if c.CompanyID == companyID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodStart.Before(out[j].PeriodStart) })
	return out, nil
}

func (r *memCloses) Last(ctx context.Context, companyID string) (*entity.BiweeklyClose, error) {
	list, _ := r.List(ctx, companyID)
	if len(list) == 0 {
		return nil, nil
	}
	return list[len(list)-1], nil
}

type memActivity struct{ s *memStore }

func (r *memActivity) Create(_ context.Context, e *entity.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.activity = append(r.s.activity, *e)
	return nil
}

type memCompanies struct{ s *memStore }

func (r *memCompanies) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.companies[c.ID] = *c
	return nil
}

func (r *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCompanies) GetByTaxID(_ context.Context, taxID string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.TaxID == taxID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memCompanies) ListActive(_ context.Context) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Company
	for _, c := range r.s.companies {
		if c.Status == "active" {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Fixture ───────────────────────────────────────────────────────────────────

const (
	companyID = "company-1"
	userID    = "user-1"
	planID    = "plan-300"
)

// fixture arma todos los use cases sobre el mismo almacén con reloj fijo.
type fixture struct {
	store     *memStore
	clock     *clock.Fixed
	payments  *billing.PaymentUseCase
	accounts  *billing.AccountUseCase
	closing   *billing.ClosingUseCase
	charges   *billing.ChargeUseCase
	plans     *billing.PlanUseCase
	collect   *billing.CollectionsUseCase
	companies *memCompanies
}

func newFixture(now time.Time) *fixture {
	s := newMemStore()
	s.companies[companyID] = entity.Company{ID: companyID, Name: "Red Norte", TaxID: "RNO010101AAA", Status: "active"}
	s.plans[planID] = entity.Plan{ID: planID, CompanyID: companyID, Name: "20 Mbps", MonthlyPrice: dec("300"), Active: true}

	// Puntero: los tests avanzan el reloj modificando fixed.T.
	fixed := &clock.Fixed{T: now}
	clk := fixed
	tx := &memTx{store: s}
	log := logger.Nop()
	accounts, payments, closes := &memAccounts{s}, &memPayments{s}, &memCloses{s}
	return &fixture{
		store:     s,
		clock:     fixed,
		payments:  billing.NewPaymentUseCase(accounts, payments, tx, idempotency.NewMemoryStore(), time.Hour, clk, log),
		accounts:  billing.NewAccountUseCase(accounts, &memPlans{s}, payments, tx, clk, log),
		closing:   billing.NewClosingUseCase(accounts, payments, closes, tx, clk, log),
		charges:   billing.NewChargeUseCase(accounts, tx, clk, log),
		plans:     billing.NewPlanUseCase(&memPlans{s}, clk),
		collect:   billing.NewCollectionsUseCase(accounts, clk),
		companies: &memCompanies{s},
	}
}

// addAccount inserta una cuenta con el plan de 300.
func (f *fixture) addAccount(id string, dueDay int, current, deferred string) {
	pid := planID
	f.store.accounts[id] = entity.Account{
		ID:          id,
		CompanyID:   companyID,
		Name:        "Cliente " + id,
		PlanID:      &pid,
		DueDay:      dueDay,
		CurrentDue:  dec(current),
		DeferredDue: dec(deferred),
		Status:      entity.AccountStatusActive,
	}
}

func (f *fixture) account(id string) entity.Account {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.accounts[id]
}

func (f *fixture) paymentCount() int {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return len(f.store.payments)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}
