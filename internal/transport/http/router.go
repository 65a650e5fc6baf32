package transporthttp

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tradepulse/internal/activity"
	"tradepulse/internal/logger"
	"tradepulse/internal/pipeline"
)

// Router 挂载 webhook 与面板只读接口。
type Router struct {
	Pipeline *pipeline.Pipeline
	Broker   pipeline.Broker
	Logs     *activity.Store
}

// NewRouter 构造 HTTP router。
func NewRouter(p *pipeline.Pipeline, b pipeline.Broker, logs *activity.Store) *Router {
	return &Router{Pipeline: p, Broker: b, Logs: logs}
}

// Register 注册全部路由。
func (r *Router) Register(engine *gin.Engine) {
	if engine == nil {
		return
	}
	engine.GET("/", r.handleRoot)
	engine.POST("/webhook", r.handleWebhook)
	api := engine.Group("/api")
	api.GET("/analyze-portfolio", r.handleAnalyzePortfolio)
	api.GET("/logs", r.handleLogs)
	api.GET("/account", r.handleAccount)
	api.GET("/history", r.handleHistory)
}

func (r *Router) handleRoot(c *gin.Context) {
	c.String(http.StatusOK, "tradepulse is running")
}

// handleWebhook 接收告警信号并交给管线。
// JSON 解析失败不提前返回：管线会先无条件落一条 WEBHOOK 审计日志，
// 再以空字段信号走校验拿到 400。
func (r *Router) handleWebhook(c *gin.Context) {
	var sig pipeline.Signal
	if err := c.ShouldBindJSON(&sig); err != nil {
		logger.Warnf("[api] webhook 解析失败 ip=%s err=%v", c.ClientIP(), err)
	}
	out := r.Pipeline.HandleSignal(c.Request.Context(), sig)
	c.String(out.Status, out.Body)
	// 盘后点评：响应已写出，再调度后台任务，失败与本请求无关。
	if out.After != nil {
		go out.After()
	}
}

func (r *Router) handleAnalyzePortfolio(c *gin.Context) {
	analysis, err := r.Pipeline.AnalyzePortfolio(c.Request.Context())
	if err != nil {
		logger.Errorf("[api] 组合分析失败 ip=%s err=%v", c.ClientIP(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

func (r *Router) handleLogs(c *gin.Context) {
	c.JSON(http.StatusOK, r.Logs.Snapshot())
}

func (r *Router) handleAccount(c *gin.Context) {
	acct, err := r.Broker.GetAccount(c.Request.Context())
	if err != nil {
		logger.Errorf("[api] 账户查询失败 ip=%s err=%v", c.ClientIP(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, acct)
}

// HistoryPoint 是面板消费的净值曲线点，由券商平行数组按下标拼成。
type HistoryPoint struct {
	Date       string          `json:"date"`
	Equity     decimal.Decimal `json:"equity"`
	ProfitLoss decimal.Decimal `json:"profitLoss"`
}

func (r *Router) handleHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "1M")
	timeframe := c.DefaultQuery("timeframe", "1D")
	hist, err := r.Broker.GetPortfolioHistory(c.Request.Context(), period, timeframe)
	if err != nil {
		logger.Errorf("[api] 净值历史查询失败 ip=%s err=%v", c.ClientIP(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, joinHistory(hist.Timestamp, hist.Equity, hist.ProfitLoss))
}

// joinHistory 按下标对齐三个平行数组，长度取最短，尾部错位数据丢弃。
func joinHistory(ts []int64, equity, profitLoss []decimal.Decimal) []HistoryPoint {
	n := len(ts)
	if len(equity) < n {
		n = len(equity)
	}
	if len(profitLoss) < n {
		n = len(profitLoss)
	}
	points := make([]HistoryPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, HistoryPoint{
			Date:       time.Unix(ts[i], 0).Format("2006-01-02"),
			Equity:     equity[i],
			ProfitLoss: profitLoss[i],
		})
	}
	return points
}
