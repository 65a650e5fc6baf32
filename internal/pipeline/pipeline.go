package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"tradepulse/internal/activity"
	"tradepulse/internal/advisor"
	"tradepulse/internal/broker"
	"tradepulse/internal/config"
	"tradepulse/internal/logger"
)

// 活动日志的来源标签，前端按来源分组展示。
const (
	SourceAlert   = "TradingView"
	SourceBroker  = "Alpaca"
	SourceAdvisor = "AI Advisor"
	SourceSystem  = "System"
)

// Broker 是管线依赖的券商能力集。
type Broker interface {
	PlaceOrder(ctx context.Context, req broker.OrderRequest) (*broker.Order, error)
	GetAccount(ctx context.Context) (*broker.Account, error)
	GetPosition(ctx context.Context, symbol string) (*broker.Position, error)
	GetAllPositions(ctx context.Context) ([]broker.Position, error)
	GetPortfolioHistory(ctx context.Context, period, timeframe string) (*broker.PortfolioHistory, error)
}

// Advisor 是管线依赖的文本补全能力。
type Advisor interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Outcome 是一次信号处理的 HTTP 结论。
// After 非空时表示还有与响应生命周期无关的后置动作（盘后点评），
// 由 HTTP 层在响应写出之后再调度，失败不回传。
type Outcome struct {
	Status int
	Body   string
	After  func()
}

// Pipeline 驱动信号校验、执行策略选择、下单与日志落账。
type Pipeline struct {
	broker  Broker
	advisor Advisor
	log     *activity.Store
	policy  string
}

func New(b Broker, a Advisor, log *activity.Store, policy string) *Pipeline {
	return &Pipeline{broker: b, advisor: a, log: log, policy: policy}
}

// HandleSignal 处理一条入站信号。
//
// 流程：无条件留痕 → 校验 → （gate 策略先过 AI 审核）→ 市价下单 →
// （advisory 策略在响应后异步点评）。两种策略由部署期配置二选一，
// 同一条信号永远只走其中一条路径。
func (p *Pipeline) HandleSignal(ctx context.Context, sig Signal) Outcome {
	// 审计要求：不管后面怎么失败，收到过什么信号必须可查。
	p.log.Record(activity.KindWebhook, SourceAlert,
		fmt.Sprintf("Received %s alert: %s @ %.2f", sig.Side(), sig.Ticker, sig.Price))

	if !sig.Valid() {
		return Outcome{Status: http.StatusBadRequest, Body: "Invalid payload"}
	}

	if p.policy == config.PolicyGate {
		outcome, vetoed := p.runGate(ctx, sig)
		if vetoed {
			return outcome
		}
	}

	return p.execute(ctx, sig)
}

// runGate 执行交易前 AI 审核。返回 vetoed=true 时管线到此为止。
func (p *Pipeline) runGate(ctx context.Context, sig Signal) (Outcome, bool) {
	text, err := p.advisor.Generate(ctx, riskPrompt(sig))
	if err != nil {
		// gate 策略下模型失败是致命的：宁可不下单。
		p.log.Record(activity.KindError, SourceAdvisor, err.Error())
		return Outcome{Status: http.StatusInternalServerError, Body: err.Error()}, true
	}
	verdict := advisor.ParseVerdict(text)
	p.log.Record(activity.KindAIAnalysis, SourceAdvisor,
		fmt.Sprintf("Risk check (%s): %s", verdict, text))
	if verdict == advisor.VerdictDeny {
		// 拒单是正常终态而非错误：系统如约否决了这笔交易。
		return Outcome{Status: http.StatusOK, Body: "Trade Denied by AI: " + text}, true
	}
	// APPROVE 与 UNKNOWN 都放行（fail-open，沿用线上行为）。
	return Outcome{}, false
}

// execute 提交市价单，并在 advisory 策略下挂载盘后点评。
func (p *Pipeline) execute(ctx context.Context, sig Signal) Outcome {
	order, err := p.broker.PlaceOrder(ctx, broker.OrderRequest{
		Symbol: sig.Ticker,
		Qty:    sig.Qty(),
		Side:   sig.Side(),
	})
	if err != nil {
		p.log.Record(activity.KindError, SourceBroker, err.Error())
		return Outcome{Status: http.StatusInternalServerError, Body: err.Error()}
	}
	p.log.Record(activity.KindExecution, SourceBroker,
		fmt.Sprintf("%s %d %s @ market (order %s)", sig.Side(), sig.Qty(), sig.Ticker, order.ID))

	out := Outcome{Status: http.StatusOK, Body: "Order Executed"}
	if p.policy == config.PolicyAdvisory {
		out.After = func() { p.postTradeReview(sig) }
	}
	return out
}

// postTradeReview 在响应已经发出后运行：拉最新账户/持仓，请模型做
// 一段策略点评写进活动日志。任何失败只进诊断日志，绝不影响已完成
// 的请求，也没有取消触发器——进程关闭途中丢失点评是可接受的。
func (p *Pipeline) postTradeReview(sig Signal) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[pipeline] 盘后点评 panic: %v", r)
		}
	}()
	ctx := context.Background()

	acct, err := p.broker.GetAccount(ctx)
	if err != nil {
		logger.Warnf("[pipeline] 盘后点评取账户失败 symbol=%s err=%v", sig.Ticker, err)
		return
	}
	qty := "0"
	pos, err := p.broker.GetPosition(ctx, sig.Ticker)
	switch {
	case err == nil:
		qty = pos.Qty.String()
	case errors.Is(err, broker.ErrPositionNotFound):
		// 未持仓按零仓位处理，不算错误。
	default:
		logger.Warnf("[pipeline] 盘后点评取持仓失败 symbol=%s err=%v", sig.Ticker, err)
		return
	}

	text, err := p.advisor.Generate(ctx, strategyPrompt(sig, acct, qty))
	if err != nil {
		logger.Warnf("[pipeline] 盘后点评生成失败 symbol=%s err=%v", sig.Ticker, err)
		return
	}
	p.log.Record(activity.KindAIStrategy, SourceAdvisor, text)
}
