package model

import (
	"time"

	"gorm.io/datatypes"
)

// PnLReport is one stored realized profit/loss computation for a pair and
// date window. The normalized ledger that produced it is kept alongside as
// JSON so a report can be re-rendered without refetching the exchange.
type PnLReport struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Pair         string    `gorm:"not null" json:"pair"`
	Symbol       string    `gorm:"not null;index" json:"symbol"`
	StartDate    time.Time `gorm:"not null" json:"start_date"`
	EndDate      time.Time `gorm:"not null" json:"end_date"`
	SnapshotTime time.Time `gorm:"not null" json:"snapshot_time"`

	Days           int `gorm:"not null" json:"days"`
	TradesExecuted int `gorm:"not null" json:"trades_executed"`

	AverageBuyPrice  *float64 `json:"average_buy_price"`
	AverageSellPrice *float64 `json:"average_sell_price"`

	DeltaBase  float64 `gorm:"not null" json:"delta_base"`
	DeltaQuote float64 `gorm:"not null" json:"delta_quote"`

	FeeBase  float64 `gorm:"not null" json:"fee_base"`
	FeeQuote float64 `gorm:"not null" json:"fee_quote"`
	FeeBNB   float64 `gorm:"not null" json:"fee_bnb"`

	TotalVolume  float64  `gorm:"not null" json:"total_volume"`
	TotalPercent *float64 `json:"total_percent"`
	TotalBase    float64  `gorm:"not null" json:"total_base"`
	TotalQuote   *float64 `json:"total_quote"`

	SymbolPrice   *float64 `json:"symbol_price"`
	QuoteUSDPrice *float64 `json:"quote_usd_price"`
	BNBQuotePrice *float64 `json:"bnb_quote_price"`

	Trades datatypes.JSON `json:"trades"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PnLReport) TableName() string {
	return "pnl_reports"
}
