package pipeline

import (
	"context"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NoPositionsMessage 是空仓时的固定回复，此时不请求模型。
const NoPositionsMessage = "No open positions to analyze."

// AnalyzePortfolio 拉取全部持仓与账户快照，请模型出一份自由文本体检
// 报告。模型输出原样返回、不做校验；任何一步失败都按失败上抛。
func (p *Pipeline) AnalyzePortfolio(ctx context.Context) (string, error) {
	positions, err := p.broker.GetAllPositions(ctx)
	if err != nil {
		return "", err
	}
	if len(positions) == 0 {
		return NoPositionsMessage, nil
	}
	acct, err := p.broker.GetAccount(ctx)
	if err != nil {
		return "", err
	}
	return p.advisor.Generate(ctx, portfolioPrompt(positions, acct))
}
