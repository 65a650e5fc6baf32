package config

import "strings"

// 默认值常量
const (
	defaultAppListen       = ":3000"
	defaultAppLogLevel     = "info"
	defaultBrokerBaseURL   = "https://paper-api.alpaca.markets"
	defaultBrokerTimeout   = 15
	defaultAdvisorModel    = "gpt-4o-mini"
	defaultAdvisorTimeout  = 30
	defaultPipelinePolicy  = PolicyAdvisory
	defaultActivityEntries = 200
)

// applyDefaults 为所有子配置应用默认值。
func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Broker.applyDefaults()
	c.Advisor.applyDefaults()
	c.Pipeline.applyDefaults()
	c.Activity.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if strings.TrimSpace(a.Listen) == "" {
		a.Listen = defaultAppListen
	}
	if strings.TrimSpace(a.LogLevel) == "" {
		a.LogLevel = defaultAppLogLevel
	}
}

func (b *BrokerConfig) applyDefaults() {
	if strings.TrimSpace(b.BaseURL) == "" {
		b.BaseURL = defaultBrokerBaseURL
	}
	if b.TimeoutSeconds <= 0 {
		b.TimeoutSeconds = defaultBrokerTimeout
	}
}

func (a *AdvisorConfig) applyDefaults() {
	if strings.TrimSpace(a.Model) == "" {
		a.Model = defaultAdvisorModel
	}
	if a.TimeoutSeconds <= 0 {
		a.TimeoutSeconds = defaultAdvisorTimeout
	}
}

func (p *PipelineConfig) applyDefaults() {
	p.Policy = strings.ToLower(strings.TrimSpace(p.Policy))
	if p.Policy == "" {
		p.Policy = defaultPipelinePolicy
	}
}

func (a *ActivityConfig) applyDefaults() {
	if a.Capacity <= 0 {
		a.Capacity = defaultActivityEntries
	}
}
