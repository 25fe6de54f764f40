// Package client is the HTTP client for the note API. Drafts run
// through the same pkg/notecontent normalization as the server, so a
// draft the client accepts is a draft the server accepts.
// Package client 是笔记 API 的 HTTP 客户端。草稿经过与服务端相同的
// pkg/notecontent 规范化，客户端通过的草稿服务端同样通过。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/listkeep/list-note-service/pkg/notecontent"
	"github.com/listkeep/list-note-service/pkg/timex"

	"github.com/pkg/errors"
)

// DefaultTimeout 默认请求超时
const DefaultTimeout = 15 * time.Second

// APIError 服务端返回的业务错误
type APIError struct {
	HTTPStatus int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// Note 服务端返回的笔记
type Note struct {
	ID        int64             `json:"id"`
	UID       int64             `json:"uid"`
	Title     string            `json:"title"`
	Type      string            `json:"type"`
	Content   notecontent.Items `json:"content"`
	CreatedAt timex.Time        `json:"createdAt"`
	UpdatedAt timex.Time        `json:"updatedAt"`
}

// User 服务端返回的用户
type User struct {
	UID      int64  `json:"uid"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Token    string `json:"token,omitempty"`
}

// Draft is a note in the making. Validate mirrors the server-side
// checks so bad drafts fail before any request is sent.
// Draft 是编辑中的笔记。Validate 与服务端校验一致，坏草稿不出门。
type Draft struct {
	Title   string               `json:"title"`
	Type    notecontent.NoteType `json:"type"`
	Content notecontent.Items    `json:"content"`
}

// Validate 按服务端顺序校验草稿
func (d *Draft) Validate() error {
	title, err := notecontent.ValidateTitle(d.Title)
	if err != nil {
		return err
	}
	if !d.Type.Valid() {
		return errors.Errorf("unknown note type %q", d.Type)
	}
	items, err := notecontent.NormalizeItems(d.Type, d.Content)
	if err != nil {
		return err
	}
	d.Title = title
	d.Content = items
	return nil
}

// Client 笔记 API 客户端
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option 客户端可选配置
type Option func(*Client)

// WithToken 预置认证令牌
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient 替换底层 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New 创建客户端实例
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token 返回当前令牌
func (c *Client) Token() string {
	return c.token
}

// envelope 统一响应结构
type envelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

// do sends the request and decodes the envelope, out may be nil
// do 发送请求并解包统一响应，out 可为 nil
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response body")
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrapf(err, "decode response (http %d)", resp.StatusCode)
	}

	if !env.Status {
		return &APIError{
			HTTPStatus: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
			Details:    env.Details,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "decode response data")
		}
	}
	return nil
}

// Register 注册并保存返回的令牌
func (c *Client) Register(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/api/user/register", map[string]string{
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	c.token = user.Token
	return &user, nil
}

// Login 登录并保存返回的令牌
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/api/user/login", map[string]string{
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	c.token = user.Token
	return &user, nil
}

// Info 获取当前用户信息
func (c *Client) Info(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/user/info", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Notes 获取全部笔记，按更新时间倒序
func (c *Client) Notes(ctx context.Context) ([]*Note, error) {
	var notes []*Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote 校验并创建笔记
func (c *Client) CreateNote(ctx context.Context, draft *Draft) (*Note, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var note Note
	if err := c.do(ctx, http.MethodPost, "/api/notes", draft, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote 校验并整体替换笔记
func (c *Client) UpdateNote(ctx context.Context, id int64, draft *Draft) (*Note, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var note Note
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/notes/%d", id), draft, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote 删除笔记
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), nil, nil)
}
