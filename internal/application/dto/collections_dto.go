package dto

import "github.com/shopspring/decimal"

// CollectionEntryDTO cuenta dentro de una lista de cobranza.
type CollectionEntryDTO struct {
	Account  AccountResponse `json:"account"`
	DaysLate int             `json:"daysLate"`
}

// CollectionListDTO lista con su total.
type CollectionListDTO struct {
	Count       int                  `json:"count"`
	Outstanding decimal.Decimal      `json:"outstanding"`
	Items       []CollectionEntryDTO `json:"items"`
}

// CollectionsViewDTO respuesta de GET /api/collections.
type CollectionsViewDTO struct {
	Date             string            `json:"date"`
	DueToday         CollectionListDTO `json:"dueToday"`
	InGrace          CollectionListDTO `json:"inGrace"`
	Arrears          CollectionListDTO `json:"arrears"`
	TotalOutstanding decimal.Decimal   `json:"totalOutstanding"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	DateLabel           string          `json:"dateLabel"`
	CurrentPeriod       string          `json:"currentPeriod"`
	DueTodayCount       int             `json:"dueTodayCount"`
	InGraceCount        int             `json:"inGraceCount"`
	ArrearsCount        int             `json:"arrearsCount"`
	TotalOutstanding    decimal.Decimal `json:"totalOutstanding"`
	CollectedToday      decimal.Decimal `json:"collectedToday"`
	CollectedThisPeriod decimal.Decimal `json:"collectedThisPeriod"`
	LastClose           *CloseResponse  `json:"lastClose,omitempty"`
}
