package pipeline

import "strings"

// Signal 是外部告警服务推来的原始交易信号，字段不可信。
// JSON 字段名对齐 TradingView webhook 的常见约定。
type Signal struct {
	Ticker    string  `json:"ticker"`
	Action    string  `json:"action"`
	Price     float64 `json:"price"`
	Contracts int     `json:"contracts"`
	Timestamp string  `json:"timestamp"`
}

// Valid 是唯一的本地校验：ticker/action 缺一不可。
// 数量、价格符号、未知标的一律放行，由券商裁决。
func (s Signal) Valid() bool {
	return strings.TrimSpace(s.Ticker) != "" && strings.TrimSpace(s.Action) != ""
}

// Side 归一买卖方向（大小写不敏感）。
func (s Signal) Side() string {
	return strings.ToLower(strings.TrimSpace(s.Action))
}

// Qty 返回下单数量，仅缺省（JSON 里不带 contracts，即零值）按 1 处理。
// 负数等异常数量原样转发：数量合法性由券商裁决，本地不设第二道关。
func (s Signal) Qty() int {
	if s.Contracts == 0 {
		return 1
	}
	return s.Contracts
}
