package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	repo "github.com/Ysaidd/proyectoAnfer-sub000/internal/repository"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const defaultHTTPTimeout = 10 * time.Second

// Client はストアのREST APIクライアント。
// GETは回路遮断器を通すが、注文送信は通さない（1回だけ送る）。
type Client struct {
	baseURL string
	http    *http.Client
	reads   *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBreakerSettings は読み取り用の遮断器の設定を差し替える（テスト用）。
func WithBreakerSettings(st gobreaker.Settings) Option {
	return func(c *Client) { c.reads = newReadBreaker(st, c.logger) }
}

func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultHTTPTimeout},
		logger:  logger,
	}
	c.reads = newReadBreaker(gobreaker.Settings{
		Name:        "store-api-reads",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}, logger)
	for _, o := range opts {
		o(c)
	}
	return c
}

func newReadBreaker(st gobreaker.Settings, logger *zap.Logger) *gobreaker.CircuitBreaker[[]byte] {
	// 4xx はバックエンドが正常に答えたので失敗に数えない
	st.IsSuccessful = func(err error) bool {
		if err == nil {
			return true
		}
		if ae, ok := repo.AsAPIError(err); ok {
			return ae.Status < http.StatusInternalServerError
		}
		return errors.Is(err, repo.ErrNotFound)
	}
	st.OnStateChange = func(name string, from gobreaker.State, to gobreaker.State) {
		logger.Warn("circuit breaker state changed",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	return gobreaker.NewCircuitBreaker[[]byte](st)
}

// getJSON は遮断器越しにGETして out にデコードする。
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.reads.Execute(func() ([]byte, error) {
		return c.do(ctx, http.MethodGet, path, nil, "")
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, method string, path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	body, err := c.do(ctx, method, path, bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	body, err := c.do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// do は1回だけリクエストを送る。2xx以外は *repository.APIError。
func (c *Client) do(ctx context.Context, method string, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if tok, ok := repo.AccessTokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &repo.APIError{Status: resp.StatusCode, Detail: parseDetail(data)}
	}
	return data, nil
}

// バックエンドのエラーは {"detail": "..."} か {"detail": [{"msg": "..."}]}
func parseDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// 404 を ErrNotFound にそろえる
func notFound(err error) error {
	if ae, ok := repo.AsAPIError(err); ok && ae.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", repo.ErrNotFound, ae.Detail)
	}
	return err
}
