package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// 信号执行策略取值。
const (
	PolicyGate     = "gate"
	PolicyAdvisory = "advisory"
)

// Load 读取 YAML 配置并叠加环境变量。
// 配置文件可以不存在：原始部署只靠环境变量，此时全部走默认值 + env。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
			}
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
		dc.WeaklyTypedInput = true
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv 叠加环境变量：密钥类配置只建议通过 env 提供。
// 变量名沿用券商/模型服务商的习惯命名，便于与官方示例对齐。
func (c *Config) applyEnv() {
	overlay := func(dst *string, keys ...string) {
		for _, k := range keys {
			if val := strings.TrimSpace(os.Getenv(k)); val != "" {
				*dst = val
				return
			}
		}
	}
	overlay(&c.Broker.KeyID, "APCA_API_KEY_ID", "ALPACA_API_KEY")
	overlay(&c.Broker.SecretKey, "APCA_API_SECRET_KEY", "ALPACA_SECRET_KEY")
	overlay(&c.Broker.BaseURL, "APCA_API_BASE_URL")
	overlay(&c.Advisor.APIKey, "OPENAI_API_KEY", "ADVISOR_API_KEY")
	overlay(&c.Advisor.BaseURL, "OPENAI_BASE_URL")
	overlay(&c.Advisor.Model, "OPENAI_MODEL")
	overlay(&c.Pipeline.Policy, "TRADEPULSE_POLICY")
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		c.App.Listen = ":" + strings.TrimPrefix(port, ":")
	}
}
