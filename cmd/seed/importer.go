package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// clientRow fila válida de la hoja de clientes.
type clientRow struct {
	Name    string
	Phone   string
	Address string
	Plan    string
	DueDay  int
	Debt    decimal.Decimal
}

type skippedRow struct {
	line   int
	reason string
}

var headerAliases = map[string]string{
	"nombre":    "nombre",
	"cliente":   "nombre",
	"telefono":  "telefono",
	"teléfono":  "telefono",
	"direccion": "direccion",
	"dirección": "direccion",
	"plan":      "plan",
	"dia_corte": "dia_corte",
	"corte":     "dia_corte",
	"adeudo":    "adeudo",
	"saldo":     "adeudo",
}

// parseClients lee el CSV (coma o punto y coma) y separa filas válidas de omitidas.
func parseClients(r io.Reader) ([]clientRow, []skippedRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")

	cr := csv.NewReader(strings.NewReader(text))
	if firstLine, _, _ := strings.Cut(text, "\n"); strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		cr.Comma = ';'
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("encabezado: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		if key, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			idx[key] = i
		}
	}
	for _, required := range []string{"nombre", "dia_corte"} {
		if _, ok := idx[required]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", required)
		}
	}

	var (
		rows    []clientRow
		skipped []skippedRow
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row, reason := toClientRow(rec, idx)
		if reason != "" {
			skipped = append(skipped, skippedRow{line: line, reason: reason})
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func toClientRow(rec []string, idx map[string]int) (clientRow, string) {
	get := func(key string) string {
		i, ok := idx[key]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	row := clientRow{
		Name:    get("nombre"),
		Phone:   get("telefono"),
		Address: get("direccion"),
		Plan:    get("plan"),
		Debt:    decimal.Zero,
	}
	if row.Name == "" {
		return row, "sin nombre"
	}
	day, err := strconv.Atoi(get("dia_corte"))
	if err != nil || day < 1 || day > 31 {
		return row, fmt.Sprintf("día de corte inválido %q", get("dia_corte"))
	}
	row.DueDay = day
	if s := get("adeudo"); s != "" {
		// "$1,250.00" → 1250.00
		s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() {
			return row, fmt.Sprintf("adeudo inválido %q", get("adeudo"))
		}
		row.Debt = d.Round(2)
	}
	return row, ""
}

// accountID derivado de empresa + nombre + teléfono para que el script sea repetible.
func accountID(company uuid.UUID, row clientRow) uuid.UUID {
	key := strings.ToLower(row.Name) + "|" + row.Phone
	return uuid.NewSHA1(company, []byte(key))
}

// writeSQL emite un INSERT por cuenta dentro de una transacción.
func writeSQL(w io.Writer, company uuid.UUID, period string, rows []clientRow) error {
	var b strings.Builder
	b.WriteString("-- Cartera de clientes importada desde CSV\n")
	b.WriteString("BEGIN;\n\n")
	for _, row := range rows {
		plan := "NULL"
		if row.Plan != "" {
			plan = fmt.Sprintf("(SELECT id FROM plans WHERE company_id = '%s' AND name = '%s')", company, escapeSQL(row.Plan))
		}
		charged := ""
		if row.Debt.IsPositive() {
			charged = period
		}
		fmt.Fprintf(&b,
			"INSERT INTO accounts (id, company_id, name, phone, address, plan_id, due_day, current_due, deferred_due, status, last_charged_period)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s, %d, %s, 0, 'ACTIVE', '%s')\n"+
				"ON CONFLICT (id) DO NOTHING;\n",
			accountID(company, row), company, escapeSQL(row.Name), escapeSQL(row.Phone), escapeSQL(row.Address),
			plan, row.DueDay, row.Debt.StringFixed(2), escapeSQL(charged),
		)
	}
	b.WriteString("\nCOMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
