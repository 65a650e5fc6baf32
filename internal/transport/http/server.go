package transporthttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tradepulse/internal/activity"
	"tradepulse/internal/logger"
	"tradepulse/internal/pipeline"
)

// Server 暴露 webhook 入口与面板只读接口。
type Server struct {
	addr   string
	router *gin.Engine
}

// ServerConfig 描述 HTTP 服务依赖。
type ServerConfig struct {
	Addr     string
	Pipeline *pipeline.Pipeline
	Broker   pipeline.Broker
	Logs     *activity.Store
}

// NewServer 构建 HTTP server。
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Pipeline == nil || cfg.Broker == nil || cfg.Logs == nil {
		return nil, errors.New("http server requires pipeline, broker and logs")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":3000"
	}
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(), allowDashboardOrigin())

	r := NewRouter(cfg.Pipeline, cfg.Broker, cfg.Logs)
	r.Register(engine)

	return &Server{addr: cfg.Addr, router: engine}, nil
}

// allowDashboardOrigin 放行浏览器面板的跨域轮询。
// webhook 调用方没有鉴权（见设计非目标），这里也就不做来源白名单。
func allowDashboardOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestLogger 给每个请求挂 request id 并记录访问日志，便于排查面板轮询。
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Header("X-Request-ID", reqID)
		c.Next()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s req=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.ClientIP(), time.Since(start), reqID)
	}
}

// Addr 返回监听地址。
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Start 启动 HTTP 服务，直到 ctx 取消或出现错误。
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
