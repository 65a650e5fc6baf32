package config

// Config 是 tradepulse 的主配置载体。
type Config struct {
	App      AppConfig      `toml:"app"`
	Broker   BrokerConfig   `toml:"broker"`
	Advisor  AdvisorConfig  `toml:"advisor"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Activity ActivityConfig `toml:"activity"`
}

type AppConfig struct {
	Listen   string `toml:"listen"`
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// BrokerConfig 描述券商（Alpaca 兼容）REST 接口。
// KeyID/SecretKey 通常来自环境变量，配置文件中留空即可。
type BrokerConfig struct {
	BaseURL        string `toml:"base_url"`
	KeyID          string `toml:"key_id"`
	SecretKey      string `toml:"secret_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// AdvisorConfig 描述聊天补全（OpenAI 兼容）接口。
type AdvisorConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// PipelineConfig 选择信号执行策略。
// policy 取值：
//   - "gate"：下单前先让 AI 审核，DENY 则拒单；
//   - "advisory"：直接下单，成交后异步生成策略点评。
type PipelineConfig struct {
	Policy string `toml:"policy"`
}

type ActivityConfig struct {
	Capacity int `toml:"capacity"`
}
