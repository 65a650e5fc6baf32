package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"tradepulse/internal/logger"
)

// Error 统一包装模型侧失败。是否致命由调用方的执行策略决定：
// gate 策略下直接拒绝信号，advisory 策略下仅记日志。
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client 是单轮聊天补全（OpenAI 兼容）接口的薄封装，无会话状态。
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// Options 控制模型客户端行为；BaseURL 为空时走官方端点。
type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	cfg := openai.DefaultConfig(opts.APIKey)
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}
	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		model:   opts.Model,
		timeout: opts.Timeout,
	}
}

// Generate 发送单条 user 消息并返回模型文本。
// 输出是自由文本，结构化解析（如 APPROVE/DENY）由调用方负责。
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &Error{Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return "", &Error{Message: fmt.Sprintf("advisor returned no choices (model=%s)", c.model)}
	}
	text := resp.Choices[0].Message.Content
	logger.Debugf("[advisor] 补全完成 model=%s chars=%d", c.model, len(text))
	return text, nil
}
