package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedPair is returned when a trading pair string does not split
// into exactly two non-empty assets.
var ErrMalformedPair = errors.New("malformed trading pair, expected BASE-QUOTE")

// Pair is a trading pair split into its base and quote assets.
type Pair struct {
	Base  string
	Quote string
}

// ParsePair splits a dash-separated pair like "BTC-USDT".
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Pair{}, fmt.Errorf("%w: %q", ErrMalformedPair, s)
	}
	return Pair{Base: parts[0], Quote: parts[1]}, nil
}

// Symbol is the exchange symbol, base and quote concatenated without a dash.
func (p Pair) Symbol() string {
	return p.Base + p.Quote
}

func (p Pair) String() string {
	return p.Base + "-" + p.Quote
}

// Trade is one normalized fill from the exchange.
type Trade struct {
	Time        time.Time `json:"time"`
	Symbol      string    `json:"symbol"`
	Side        string    `json:"side"`
	Price       float64   `json:"price"`
	QtyBase     float64   `json:"qty_base"`
	QtyQuote    float64   `json:"qty_quote"`
	Fee         float64   `json:"fee"`
	FeeCurrency string    `json:"fee_currency"`
}

// SignedSide maps the trade side to the multiplier used in the aggregate
// formulas: BUY → +1, SELL → -1.
func (t Trade) SignedSide() float64 {
	if t.Side == SideBuy {
		return 1
	}
	return -1
}

// PnLRequest asks for a realized profit/loss summary of one pair over an
// inclusive calendar-date window.
type PnLRequest struct {
	Pair      string `json:"pair" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// PnLSummary is the computed realized profit/loss for a pair and window.
//
// Reference prices are fetched best-effort; a nil price means the lookup
// failed, and fields derived from it (TotalQuote for SymbolPrice) are nil as
// well rather than computed from garbage. Averages are nil when the ledger
// has no trades on that side.
type PnLSummary struct {
	Pair         string    `json:"pair"`
	Symbol       string    `json:"symbol"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	SnapshotTime time.Time `json:"snapshot_time"`

	Days           int `json:"days"`
	TradesExecuted int `json:"trades_executed"`

	AverageBuyPrice  *float64 `json:"average_buy_price"`
	AverageSellPrice *float64 `json:"average_sell_price"`

	DeltaBase  float64 `json:"delta_base"`
	DeltaQuote float64 `json:"delta_quote"`

	FeeBase  float64 `json:"fee_base"`
	FeeQuote float64 `json:"fee_quote"`
	FeeBNB   float64 `json:"fee_bnb"`

	TotalVolume  float64  `json:"total_volume"`
	TotalPercent *float64 `json:"total_percent"`
	TotalBase    float64  `json:"total_base"`
	TotalQuote   *float64 `json:"total_quote"`

	SymbolPrice   *float64 `json:"symbol_price"`
	QuoteUSDPrice *float64 `json:"quote_usd_price"`
	BNBQuotePrice *float64 `json:"bnb_quote_price"`

	Trades []Trade `json:"trades"`
}
