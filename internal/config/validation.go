package config

import "fmt"

// validate 对配置进行基础校验。
// 注意：券商/模型密钥不在这里检查——缺失密钥由下游调用失败暴露，
// 以便纸面联调时只配置其中一个外部服务也能启动。
func validate(c *Config) error {
	if err := c.Pipeline.validate(); err != nil {
		return err
	}
	if err := c.Activity.validate(); err != nil {
		return err
	}
	return nil
}

func (p *PipelineConfig) validate() error {
	switch p.Policy {
	case PolicyGate, PolicyAdvisory:
		return nil
	default:
		return fmt.Errorf("pipeline.policy must be %q or %q, got %q", PolicyGate, PolicyAdvisory, p.Policy)
	}
}

func (a *ActivityConfig) validate() error {
	if a.Capacity < 1 {
		return fmt.Errorf("activity.capacity must be >= 1")
	}
	return nil
}
