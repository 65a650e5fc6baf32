package pipeline

import (
	"fmt"
	"strings"

	"tradepulse/internal/broker"
)

// riskPrompt 生成交易前审核提示词。要求模型给出可被子串匹配的结论。
func riskPrompt(sig Signal) string {
	var b strings.Builder
	b.WriteString("You are a strict risk manager for a stock trading desk.\n")
	b.WriteString("An automated alert wants to place the following market order:\n")
	fmt.Fprintf(&b, "- Ticker: %s\n", sig.Ticker)
	fmt.Fprintf(&b, "- Action: %s\n", sig.Side())
	fmt.Fprintf(&b, "- Quantity: %d\n", sig.Qty())
	fmt.Fprintf(&b, "- Alert price: %.2f\n", sig.Price)
	if ts := strings.TrimSpace(sig.Timestamp); ts != "" {
		fmt.Fprintf(&b, "- Alert time: %s\n", ts)
	}
	b.WriteString("Reply with APPROVE or DENY on the first line, followed by one short reason.\n")
	return b.String()
}

// strategyPrompt 生成成交后的策略点评提示词。
func strategyPrompt(sig Signal, acct *broker.Account, positionQty string) string {
	var b strings.Builder
	b.WriteString("You are a portfolio strategist. A market order was just executed:\n")
	fmt.Fprintf(&b, "- %s %d %s (alert price %.2f)\n", sig.Side(), sig.Qty(), sig.Ticker, sig.Price)
	b.WriteString("Current account state:\n")
	fmt.Fprintf(&b, "- Portfolio value: %s %s\n", acct.PortfolioValue.StringFixed(2), acct.Currency)
	fmt.Fprintf(&b, "- Buying power: %s %s\n", acct.BuyingPower.StringFixed(2), acct.Currency)
	fmt.Fprintf(&b, "- Position in %s after fill: %s shares\n", sig.Ticker, positionQty)
	b.WriteString("In 3-4 sentences, comment on this trade relative to the account: sizing, cash usage, and what to watch next.\n")
	return b.String()
}

// portfolioPrompt 生成整体持仓体检提示词。
func portfolioPrompt(positions []broker.Position, acct *broker.Account) string {
	var b strings.Builder
	b.WriteString("You are a portfolio analyst. Review the following open positions:\n")
	for _, pos := range positions {
		fmt.Fprintf(&b, "- %s: %s shares, market value %s, unrealized P/L %s (%s%%)\n",
			pos.Symbol,
			pos.Qty.String(),
			pos.MarketValue.StringFixed(2),
			pos.UnrealizedPL.StringFixed(2),
			pos.UnrealizedPLPC.Mul(hundred).StringFixed(2))
	}
	b.WriteString("Account totals:\n")
	fmt.Fprintf(&b, "- Equity: %s %s\n", acct.Equity.StringFixed(2), acct.Currency)
	fmt.Fprintf(&b, "- Buying power: %s %s\n", acct.BuyingPower.StringFixed(2), acct.Currency)
	b.WriteString("Produce a short report with: the best performer, the worst performer ")
	b.WriteString("with a recommendation on whether to cut losses, and whether the portfolio ")
	b.WriteString("is overly concentrated in any single position.\n")
	return b.String()
}
