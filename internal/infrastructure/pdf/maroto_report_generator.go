// Package pdf genera los documentos imprimibles del back-office con Maroto v2:
// el comprobante de pago que se entrega al cliente y el reporte de cierre quincenal.
//
// Layout del comprobante (A5):
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: Empresa + RFC     │  Folio + Fecha     │
//	│  ──────────────────────────────────────────── │
//	│  CLIENTE: Nombre / Plan / Día de corte         │
//	│  ──────────────────────────────────────────── │
//	│  PAGO: Tipo / Método / Referencia / Periodo    │
//	│  MONTO RECIBIDO                                │
//	│  ──────────────────────────────────────────── │
//	│  SALDO PENDIENTE + QR con el folio             │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/jhoicas/redcobro-api/internal/application/billing"
	"github.com/jhoicas/redcobro-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 92, Blue: 75}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var kindLabels = map[string]string{
	entity.PaymentKindSettlement: "Liquidación",
	entity.PaymentKindPartial:    "Abono",
	entity.PaymentKindDeferral:   "Prórroga",
}

var methodLabels = map[string]string{
	entity.PaymentMethodCash:     "Efectivo",
	entity.PaymentMethodTransfer: "Transferencia",
	entity.PaymentMethodDeposit:  "Depósito",
	entity.PaymentMethodCard:     "Tarjeta",
	entity.PaymentMethodSystem:   "Sistema",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa billing.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	printer *message.Printer
}

// NewMarotoReportGenerator construye el generador; los montos se formatean en es-MX.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{printer: message.NewPrinter(language.MustParse("es-MX"))}
}

// GenerateReceiptPDF comprobante de un pago.
func (g *MarotoReportGenerator) GenerateReceiptPDF(_ context.Context, data appbilling.ReceiptData) ([]byte, error) {
	p := data.Payment
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago", true).
		WithAuthor(data.Company.Name, true).
		Build()
	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data.Company, "COMPROBANTE DE PAGO", folio(p.ID), p.CreatedAt.Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(data.Account))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.paymentRows(p)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.balanceRow(data.Account, p))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateCloseReportPDF reporte de un cierre quincenal.
func (g *MarotoReportGenerator) GenerateCloseReportPDF(_ context.Context, company *entity.Company, c *entity.BiweeklyClose) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre quincenal "+c.PeriodLabel, true).
		WithAuthor(company.Name, true).
		Build()
	m := maroto.New(cfg)

	last := c.PeriodEnd.AddDate(0, 0, -1)
	m.AddRows(g.headerRow(company, "CIERRE QUINCENAL", c.PeriodLabel,
		fmt.Sprintf("%s al %s", c.PeriodStart.Format("02/01/2006"), last.Format("02/01/2006"))))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	estadoColor := colorPrimary
	if c.Estado == entity.CloseStatusDeficit {
		estadoColor = colorAlert
	}
	m.AddRows(
		g.amountRow("Meta estimada", c.MetaEstimada, nil),
		g.amountRow("Cobrado a tiempo", c.CobradoATiempo, nil),
		g.amountRow("Cobrado recuperado (tardío)", c.CobradoRecuperado, nil),
		g.amountRow("Total cobrado", c.CobradoATiempo.Add(c.CobradoRecuperado), colorPrimary),
		g.amountRow("Faltante", c.Faltante, estadoColor),
		g.amountRow("Excedente", c.Excedente, nil),
	)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Pagos incluidos: %d", c.PagosIncluidos), props.Text{Size: 9, Top: 3})),
		col.New(6).Add(text.New(c.Estado, props.Text{
			Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: estadoColor, Top: 2,
		})),
	))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Generado "+c.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 7, Color: colorGray, Top: 3}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de cierre: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + RFC (izq) y título + folio + fecha (der).
func (g *MarotoReportGenerator) headerRow(company *entity.Company, title, id, date string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("RFC: "+company.TaxID, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(nonEmpty(company.Phone, ""), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(id, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6}),
			text.New(date, props.Text{Size: 8, Align: align.Right, Top: 12, Color: colorGray}),
		),
	)
}

// customerRow: datos del cliente y su plan.
func customerRow(acc *entity.AccountWithPlan) core.Row {
	plan := "Sin plan"
	if acc.Plan != nil {
		plan = acc.Plan.Name
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(acc.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(fmt.Sprintf("Plan: %s   |   Día de corte: %d   |   Tel: %s",
				plan, acc.DueDay, nonEmpty(acc.Phone, "—"),
			), props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func (g *MarotoReportGenerator) paymentRows(p *entity.Payment) []core.Row {
	rows := []core.Row{
		g.labelRow("Tipo", kindLabels[p.Kind]),
		g.labelRow("Método", methodLabels[p.Method]),
		g.labelRow("Periodo de servicio", p.ServicePeriod),
	}
	if p.Reference != "" {
		rows = append(rows, g.labelRow("Referencia", p.Reference))
	}
	if p.IsLate {
		rows = append(rows, g.labelRow("Días de atraso", fmt.Sprintf("%d", p.DaysLate)))
	}
	if p.Note != "" {
		rows = append(rows, g.labelRow("Nota", p.Note))
	}
	label := "MONTO RECIBIDO"
	if !p.MovesMoney() {
		label = "MONTO PRORROGADO"
	}
	rows = append(rows, g.amountRow(label, p.Amount, colorPrimary))
	return rows
}

// balanceRow: saldo actual + QR con el folio completo para búsquedas.
func (g *MarotoReportGenerator) balanceRow(acc *entity.AccountWithPlan, p *entity.Payment) core.Row {
	return row.New(32).Add(
		col.New(8).Add(
			text.New("Saldo pendiente", props.Text{Style: fontstyle.Bold, Size: 9, Top: 4}),
			text.New(g.money(acc.TotalDebt()), props.Text{Style: fontstyle.Bold, Size: 14, Top: 10, Color: colorPrimary}),
			text.New("Conserve este comprobante.", props.Text{Size: 7, Top: 22, Color: colorGray}),
		),
		col.New(4).Add(code.NewQr(p.ID, props.Rect{Percent: 90, Center: true})),
	)
}

func (g *MarotoReportGenerator) labelRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(5).Add(text.New(label+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(7).Add(text.New(value, props.Text{Size: 8, Top: 1})),
	)
}

func (g *MarotoReportGenerator) amountRow(label string, v decimal.Decimal, color *props.Color) core.Row {
	style := fontstyle.Normal
	if color != nil {
		style = fontstyle.Bold
	}
	return row.New(8).Add(
		col.New(7).Add(text.New(label, props.Text{Style: style, Size: 10, Top: 2, Color: color})),
		col.New(5).Add(text.New(g.money(v), props.Text{Style: style, Size: 10, Top: 2, Align: align.Right, Color: color})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separador de miles y dos decimales, ej: "$1,234.50".
func (g *MarotoReportGenerator) money(v decimal.Decimal) string {
	return "$" + g.printer.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}

func folio(id string) string {
	if len(id) > 8 {
		return "F-" + id[:8]
	}
	return "F-" + id
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
