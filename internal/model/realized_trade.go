package model

import "time"

// RealizedTrade is one realized-pnl event, materialized per SELL fill so
// chart queries can group across symbols and dates without reparsing report
// ledgers.
type RealizedTrade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReportID  uint      `gorm:"not null;index" json:"report_id"`
	Symbol    string    `gorm:"not null;index" json:"symbol"`
	TradeTime time.Time `gorm:"not null;index" json:"trade_time"`
	PnL       float64   `gorm:"not null;column:pnl" json:"pnl"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (RealizedTrade) TableName() string {
	return "realized_trades"
}
