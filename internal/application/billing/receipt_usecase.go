package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/redcobro-api/internal/domain"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
	"github.com/jhoicas/redcobro-api/internal/domain/repository"
)

// ReceiptUseCase genera los PDF de comprobante de pago y de reporte de cierre.
type ReceiptUseCase struct {
	companies repository.CompanyRepository
	accounts  repository.AccountRepository
	payments  repository.PaymentRepository
	closes    repository.CloseRepository
	generator ReportPDFGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	companies repository.CompanyRepository,
	accounts repository.AccountRepository,
	payments repository.PaymentRepository,
	closes repository.CloseRepository,
	generator ReportPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		companies: companies,
		accounts:  accounts,
		payments:  payments,
		closes:    closes,
		generator: generator,
	}
}

// PaymentReceipt comprobante de un pago. Devuelve bytes y nombre de archivo.
func (uc *ReceiptUseCase) PaymentReceipt(ctx context.Context, companyID, paymentID string) ([]byte, string, error) {
	payment, err := uc.payments.GetByID(ctx, companyID, paymentID)
	if err != nil {
		return nil, "", err
	}
	if payment == nil {
		return nil, "", domain.ErrNotFound
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	account, err := uc.accounts.GetByID(ctx, companyID, payment.AccountID)
	if err != nil {
		return nil, "", err
	}
	if account == nil {
		return nil, "", domain.ErrNotFound
	}

	pdf, err := uc.generator.GenerateReceiptPDF(ctx, ReceiptData{Company: company, Account: account, Payment: payment})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: comprobante: %w", err)
	}
	return pdf, fmt.Sprintf("comprobante_%s.pdf", shortID(payment.ID)), nil
}

// CloseReport reporte PDF de un cierre quincenal.
func (uc *ReceiptUseCase) CloseReport(ctx context.Context, companyID, closeID string) ([]byte, string, error) {
	c, err := uc.closes.GetByID(ctx, companyID, closeID)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		return nil, "", domain.ErrNotFound
	}
	company, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateCloseReportPDF(ctx, company, c)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: reporte de cierre: %w", err)
	}
	return pdf, fmt.Sprintf("cierre_%s.pdf", c.PeriodLabel), nil
}

func (uc *ReceiptUseCase) company(ctx context.Context, companyID string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}
	return company, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
