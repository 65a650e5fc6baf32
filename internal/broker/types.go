package broker

import "github.com/shopspring/decimal"

// 券商接口返回的数值均为 JSON 字符串（如 "qty": "10.5"），
// decimal 两种形态都能解码，后续拼 prompt 时也不丢精度。

// Account 账户快照，字段原样透传给前端。
type Account struct {
	ID             string          `json:"id"`
	AccountNumber  string          `json:"account_number"`
	Status         string          `json:"status"`
	Currency       string          `json:"currency"`
	Cash           decimal.Decimal `json:"cash"`
	PortfolioValue decimal.Decimal `json:"portfolio_value"`
	Equity         decimal.Decimal `json:"equity"`
	LastEquity     decimal.Decimal `json:"last_equity"`
	BuyingPower    decimal.Decimal `json:"buying_power"`
}

// Position 单个持仓快照。
type Position struct {
	Symbol         string          `json:"symbol"`
	Qty            decimal.Decimal `json:"qty"`
	Side           string          `json:"side"`
	AvgEntryPrice  decimal.Decimal `json:"avg_entry_price"`
	MarketValue    decimal.Decimal `json:"market_value"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	UnrealizedPL   decimal.Decimal `json:"unrealized_pl"`
	UnrealizedPLPC decimal.Decimal `json:"unrealized_plpc"`
}

// OrderRequest 下单参数。本系统只会发 market/day 单。
type OrderRequest struct {
	Symbol string `json:"symbol"`
	Qty    int    `json:"qty"`
	Side   string `json:"side"`
}

// Order 券商返回的订单确认，内容对本系统不透明，只记录不解读。
type Order struct {
	ID            string          `json:"id"`
	ClientOrderID string          `json:"client_order_id"`
	Symbol        string          `json:"symbol"`
	Qty           decimal.Decimal `json:"qty"`
	Side          string          `json:"side"`
	Type          string          `json:"type"`
	TimeInForce   string          `json:"time_in_force"`
	Status        string          `json:"status"`
}

// PortfolioHistory 为平行数组形式的净值历史，按下标对齐。
type PortfolioHistory struct {
	Timestamp  []int64           `json:"timestamp"`
	Equity     []decimal.Decimal `json:"equity"`
	ProfitLoss []decimal.Decimal `json:"profit_loss"`
	Timeframe  string            `json:"timeframe"`
}
