package pipeline

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepulse/internal/broker"
	"tradepulse/internal/config"
)

func TestAnalyzePortfolio_NoPositions(t *testing.T) {
	b := &fakeBroker{}
	a := &fakeAdvisor{reply: "should not be called"}
	p, _ := newTestPipeline(config.PolicyAdvisory, b, a)

	analysis, err := p.AnalyzePortfolio(context.Background())

	require.NoError(t, err)
	assert.Equal(t, NoPositionsMessage, analysis)
	assert.Zero(t, a.calls, "空仓时不请求模型")
}

func TestAnalyzePortfolio_WithPositions(t *testing.T) {
	b := &fakeBroker{
		positions: []broker.Position{
			{
				Symbol:         "AAPL",
				Qty:            decimal.NewFromInt(10),
				MarketValue:    decimal.NewFromInt(1500),
				UnrealizedPL:   decimal.NewFromInt(120),
				UnrealizedPLPC: decimal.NewFromFloat(0.087),
			},
			{
				Symbol:         "TSLA",
				Qty:            decimal.NewFromInt(5),
				MarketValue:    decimal.NewFromInt(900),
				UnrealizedPL:   decimal.NewFromInt(-60),
				UnrealizedPLPC: decimal.NewFromFloat(-0.0625),
			},
		},
	}
	a := &fakeAdvisor{reply: "Best performer: AAPL. Worst: TSLA, consider cutting."}
	p, _ := newTestPipeline(config.PolicyAdvisory, b, a)

	analysis, err := p.AnalyzePortfolio(context.Background())

	require.NoError(t, err)
	assert.Equal(t, a.reply, analysis, "模型输出原样透传")
	require.Equal(t, 1, a.calls)
	prompt := a.prompts[0]
	assert.Contains(t, prompt, "AAPL")
	assert.Contains(t, prompt, "TSLA")
	assert.Contains(t, prompt, "unrealized P/L")
}

func TestAnalyzePortfolio_BrokerFailure(t *testing.T) {
	b := &fakeBroker{allPosErr: &broker.Error{Message: "forbidden"}}
	a := &fakeAdvisor{}
	p, _ := newTestPipeline(config.PolicyAdvisory, b, a)

	_, err := p.AnalyzePortfolio(context.Background())

	require.Error(t, err)
	assert.Equal(t, "forbidden", err.Error())
	assert.Zero(t, a.calls)
}
