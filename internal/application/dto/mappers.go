package dto

import "github.com/jhoicas/redcobro-api/internal/domain/entity"

// NewPlanResponse mapea la entidad a su forma JSON.
func NewPlanResponse(p *entity.Plan) *PlanResponse {
	if p == nil {
		return nil
	}
	return &PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		MonthlyPrice: p.MonthlyPrice,
		Speed:        p.Speed,
		Active:       p.Active,
	}
}

// NewAccountResponse mapea la cuenta (con plan si lo tiene).
func NewAccountResponse(a *entity.AccountWithPlan) AccountResponse {
	return AccountResponse{
		ID:                a.ID,
		Name:              a.Name,
		Phone:             a.Phone,
		Address:           a.Address,
		PlanID:            a.PlanID,
		Plan:              NewPlanResponse(a.Plan),
		DueDay:            a.DueDay,
		CurrentDue:        a.CurrentDue,
		DeferredDue:       a.DeferredDue,
		TotalDebt:         a.TotalDebt(),
		Status:            a.Status,
		LastChargedPeriod: a.LastChargedPeriod,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

// NewPaymentResponse mapea el evento de pago.
func NewPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		AccountID:         p.AccountID,
		Amount:            p.Amount,
		AppliedAmount:     p.AppliedAmount,
		Kind:              p.Kind,
		Method:            p.Method,
		Reference:         p.Reference,
		Period:            p.ServicePeriod,
		LateJustification: p.LateJustification,
		Note:              p.Note,
		IsLate:            p.IsLate,
		DaysLate:          p.DaysLate,
		Penalized:         p.Penalized,
		RequestID:         p.RequestID,
		UserID:            p.UserID,
		CloseID:           p.CloseID,
		CreatedAt:         p.CreatedAt,
	}
}

// NewCloseResponse mapea el cierre quincenal.
func NewCloseResponse(c *entity.BiweeklyClose) *CloseResponse {
	if c == nil {
		return nil
	}
	return &CloseResponse{
		ID:                c.ID,
		PeriodLabel:       c.PeriodLabel,
		PeriodStart:       c.PeriodStart,
		PeriodEnd:         c.PeriodEnd,
		MetaEstimada:      c.MetaEstimada,
		CobradoATiempo:    c.CobradoATiempo,
		CobradoRecuperado: c.CobradoRecuperado,
		Faltante:          c.Faltante,
		Excedente:         c.Excedente,
		Estado:            c.Estado,
		PagosIncluidos:    c.PagosIncluidos,
		CreatedAt:         c.CreatedAt,
	}
}

// NewUserResponse nunca expone el hash del password.
func NewUserResponse(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
