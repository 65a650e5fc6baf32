package broker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"tradepulse/internal/logger"
)

// Error 统一包装券商侧失败：网络、鉴权、参数、拒单不作区分，
// message 原样透传给调用方（观测性优先，见 DESIGN.md）。
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrPositionNotFound 表示查询的标的当前没有持仓，调用方按零仓位处理。
var ErrPositionNotFound = errors.New("position not found")

// apiError 是券商错误响应体 {"code":..,"message":".."}。
type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client 是 Alpaca 兼容交易 REST 接口的薄封装。
type Client struct {
	http *resty.Client
}

// Options 控制券商客户端行为。
type Options struct {
	BaseURL   string
	KeyID     string
	SecretKey string
	Timeout   time.Duration
}

// NewClient 构建券商客户端。密钥不在此校验，坏密钥由首次调用报 401。
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	httpc := resty.New()
	httpc.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	httpc.SetTimeout(opts.Timeout)
	httpc.SetHeader("APCA-API-KEY-ID", opts.KeyID)
	httpc.SetHeader("APCA-API-SECRET-KEY", opts.SecretKey)
	return &Client{http: httpc}
}

// PlaceOrder 提交市价单（time_in_force=day）。
// 数量、标的有效性不在本地校验，券商是最终裁判。
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body := map[string]any{
		"symbol":        req.Symbol,
		"qty":           req.Qty,
		"side":          strings.ToLower(req.Side),
		"type":          "market",
		"time_in_force": "day",
	}
	var order Order
	var aerr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&order).
		SetError(&aerr).
		Post("/v2/orders")
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if resp.IsError() {
		return nil, newAPIError(resp, aerr)
	}
	logger.Debugf("[broker] 下单成功 symbol=%s qty=%d side=%s order_id=%s", req.Symbol, req.Qty, req.Side, order.ID)
	return &order, nil
}

// GetAccount 读取账户快照。
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var acct Account
	var aerr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&acct).
		SetError(&aerr).
		Get("/v2/account")
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if resp.IsError() {
		return nil, newAPIError(resp, aerr)
	}
	return &acct, nil
}

// GetPosition 查询单个标的持仓；未持仓返回 ErrPositionNotFound。
func (c *Client) GetPosition(ctx context.Context, symbol string) (*Position, error) {
	var pos Position
	var aerr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&pos).
		SetError(&aerr).
		Get("/v2/positions/" + strings.ToUpper(strings.TrimSpace(symbol)))
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrPositionNotFound
	}
	if resp.IsError() {
		return nil, newAPIError(resp, aerr)
	}
	return &pos, nil
}

// GetAllPositions 列出全部持仓。
func (c *Client) GetAllPositions(ctx context.Context) ([]Position, error) {
	var positions []Position
	var aerr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&positions).
		SetError(&aerr).
		Get("/v2/positions")
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if resp.IsError() {
		return nil, newAPIError(resp, aerr)
	}
	return positions, nil
}

// GetPortfolioHistory 拉取账户净值历史（平行数组，由调用方按下标拼装）。
func (c *Client) GetPortfolioHistory(ctx context.Context, period, timeframe string) (*PortfolioHistory, error) {
	var hist PortfolioHistory
	var aerr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"period":    period,
			"timeframe": timeframe,
		}).
		SetResult(&hist).
		SetError(&aerr).
		Get("/v2/account/portfolio/history")
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	if resp.IsError() {
		return nil, newAPIError(resp, aerr)
	}
	return &hist, nil
}

func newAPIError(resp *resty.Response, aerr apiError) *Error {
	msg := strings.TrimSpace(aerr.Message)
	if msg == "" {
		msg = fmt.Sprintf("broker request failed: %s", resp.Status())
	}
	return &Error{StatusCode: resp.StatusCode(), Message: msg}
}
