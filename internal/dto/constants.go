package dto

// Trade sides as reported in the normalized ledger.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// RebateAsset is the exchange token fees may optionally be paid in at a
// discount.
const RebateAsset = "BNB"

// USDStablecoins are quote assets treated as 1:1 with USD, skipping the
// quote→USD price lookup entirely.
var USDStablecoins = []string{"USDT", "USDC", "BUSD"}
