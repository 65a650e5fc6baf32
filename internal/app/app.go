package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"tradepulse/internal/activity"
	"tradepulse/internal/advisor"
	"tradepulse/internal/broker"
	"tradepulse/internal/config"
	"tradepulse/internal/logger"
	"tradepulse/internal/pipeline"
	transporthttp "tradepulse/internal/transport/http"
)

// App 负责应用级编排：加载配置→装配依赖→启动 HTTP 服务。
type App struct {
	cfg    *config.Config
	logs   *activity.Store
	server *transporthttp.Server
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	logs := activity.NewStore(cfg.Activity.Capacity)

	brokerClient := broker.NewClient(broker.Options{
		BaseURL:   cfg.Broker.BaseURL,
		KeyID:     cfg.Broker.KeyID,
		SecretKey: cfg.Broker.SecretKey,
		Timeout:   time.Duration(cfg.Broker.TimeoutSeconds) * time.Second,
	})
	advisorClient := advisor.NewClient(advisor.Options{
		BaseURL: cfg.Advisor.BaseURL,
		APIKey:  cfg.Advisor.APIKey,
		Model:   cfg.Advisor.Model,
		Timeout: time.Duration(cfg.Advisor.TimeoutSeconds) * time.Second,
	})

	pipe := pipeline.New(brokerClient, advisorClient, logs, cfg.Pipeline.Policy)

	server, err := transporthttp.NewServer(transporthttp.ServerConfig{
		Addr:     cfg.App.Listen,
		Pipeline: pipe,
		Broker:   brokerClient,
		Logs:     logs,
	})
	if err != nil {
		return nil, fmt.Errorf("building http server failed: %w", err)
	}

	// 日志类别是闭集（前端按这五类着色），启动事件没有专属类别，
	// 借用 WEBHOOK 落账并以 source=System 和消息前缀与真实信号区分。
	logs.Record(activity.KindWebhook, pipeline.SourceSystem,
		fmt.Sprintf("Service started (policy=%s)", cfg.Pipeline.Policy))

	return &App{cfg: cfg, logs: logs, server: server}, nil
}

// Run 启动 HTTP 服务并阻塞至 ctx 取消。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	logger.Infof("✓ 服务启动 listen=%s policy=%s capacity=%d",
		a.server.Addr(), a.cfg.Pipeline.Policy, a.cfg.Activity.Capacity)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}
