package dto

import "time"

// RealizedRow is one realized-pnl event, the tabular shape the chart
// endpoints group over: {date, symbol, realized pnl in quote units}.
type RealizedRow struct {
	Time   time.Time `json:"time"`
	Symbol string    `json:"symbol"`
	PnL    float64   `json:"pnl"`
}

// ChartRequest selects realized rows by symbols and date window. Empty
// Symbols means all stored symbols.
type ChartRequest struct {
	Symbols   []string `json:"symbols"`
	StartDate string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// DailyPnL is one bar of the per-day chart; Cumulative carries the running
// sum up to and including that day.
type DailyPnL struct {
	Date       string  `json:"date"`
	PnL        float64 `json:"pnl"`
	Cumulative float64 `json:"cumulative"`
}

// SymbolPnL is the per-symbol total with its profit/loss classification.
type SymbolPnL struct {
	Symbol   string  `json:"symbol"`
	PnL      float64 `json:"pnl"`
	Category string  `json:"category"` // "profit" or "loss"
}

// ChartData is everything the dashboard needs: daily bars with the
// cumulative line, per-symbol totals sorted ascending by pnl, and the
// overall profit/loss split.
type ChartData struct {
	Daily       []DailyPnL  `json:"daily"`
	BySymbol    []SymbolPnL `json:"by_symbol"`
	ProfitTotal float64     `json:"profit_total"`
	LossTotal   float64     `json:"loss_total"`
	NetTotal    float64     `json:"net_total"`
}
