package routers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	internalApp "github.com/listkeep/list-note-service/internal/app"
	"github.com/listkeep/list-note-service/internal/dao"
	"github.com/listkeep/list-note-service/internal/dto"
	"github.com/listkeep/list-note-service/pkg/validator"

	"github.com/creasty/defaults"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// res mirrors the response envelope, Data kept raw for per-test decoding
// res 对应统一响应结构，Data 保留原始 JSON 供各测试自行解码
type res struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

func newTestTranslator(t *testing.T) *ut.UniversalTranslator {
	t.Helper()

	customValidator := validator.NewCustomValidator()
	binding.Validator = customValidator

	validate, ok := binding.Validator.Engine().(*validatorV10.Validate)
	require.True(t, ok)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	uni := ut.New(en.New(), en.New(), zh.New())

	zhTran, _ := uni.GetTranslator("zh")
	enTran, _ := uni.GetTranslator("en")
	require.NoError(t, zh_translations.RegisterDefaultTranslations(validate, zhTran))
	require.NoError(t, en_translations.RegisterDefaultTranslations(validate, enTran))

	return uni
}

func newTestRouter(t *testing.T) (*gin.Engine, *internalApp.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := new(internalApp.AppConfig)
	require.NoError(t, defaults.Set(cfg))

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:        "sqlite",
		Path:        ":memory:",
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(t, err)

	appContainer, err := internalApp.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)

	return NewRouter(appContainer, newTestTranslator(t)), appContainer
}

// newUserToken registers through the service layer so the shared rate
// limit buckets are not drained by test setup.
// newUserToken 走服务层注册，避免测试准备阶段消耗共享限流桶。
func newUserToken(t *testing.T, appContainer *internalApp.App, email string) string {
	t.Helper()

	user, err := appContainer.UserService.Register(context.Background(), &dto.UserRegisterRequest{
		Email:    email,
		Password: "secret-pass",
	}, "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, user.Token)
	return user.Token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, res) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var envelope res
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), "body: %s", w.Body.String())
	return w, envelope
}

func TestRouter_RegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	w, envelope := doRequest(t, r, http.MethodPost, "/api/user/register", "", map[string]string{
		"email":    "http@example.com",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, envelope.Status)

	w, envelope = doRequest(t, r, http.MethodPost, "/api/user/login", "", map[string]string{
		"email":    "http@example.com",
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var user struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &user))
	assert.NotEmpty(t, user.Token)

	// 密码错误
	w, envelope = doRequest(t, r, http.MethodPost, "/api/user/login", "", map[string]string{
		"email":    "http@example.com",
		"password": "wrong-pass",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 10000200, envelope.Code)
}

func TestRouter_NoteFlow(t *testing.T) {
	r, appContainer := newTestRouter(t)
	token := newUserToken(t, appContainer, "flow@example.com")

	// 创建
	w, envelope := doRequest(t, r, http.MethodPost, "/api/notes", token, map[string]interface{}{
		"title":   "chores",
		"type":    "checklist",
		"content": []interface{}{"wash dishes", map[string]interface{}{"text": "laundry", "isMarked": true}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, envelope.Status)

	var created struct {
		ID      int64             `json:"id"`
		Type    string            `json:"type"`
		Content []json.RawMessage `json:"content"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, "checklist", created.Type)
	// 纯文本条目被提升为勾选项
	require.Len(t, created.Content, 2)
	assert.JSONEq(t, `{"text":"wash dishes","isMarked":false}`, string(created.Content[0]))
	assert.JSONEq(t, `{"text":"laundry","isMarked":true}`, string(created.Content[1]))

	// 列表
	w, envelope = doRequest(t, r, http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(envelope.Data, &list))
	assert.Len(t, list, 1)

	// 更新
	w, envelope = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/notes/%d", created.ID), token, map[string]interface{}{
		"title":   "chores v2",
		"type":    "bullet",
		"content": []interface{}{"only one thing"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated struct {
		Title string `json:"title"`
		Type  string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &updated))
	assert.Equal(t, "chores v2", updated.Title)
	assert.Equal(t, "bullet", updated.Type)

	// 删除后列表为空
	w, _ = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/notes/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, envelope = doRequest(t, r, http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list = nil
	require.NoError(t, json.Unmarshal(envelope.Data, &list))
	assert.Empty(t, list)
}

func TestRouter_OwnershipIsolation(t *testing.T) {
	r, appContainer := newTestRouter(t)
	tokenA := newUserToken(t, appContainer, "a@example.com")
	tokenB := newUserToken(t, appContainer, "b@example.com")

	w, envelope := doRequest(t, r, http.MethodPost, "/api/notes", tokenA, map[string]interface{}{
		"title":   "mine",
		"type":    "bullet",
		"content": []interface{}{"a"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &created))

	// 他人的笔记与不存在等价
	w, envelope = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/notes/%d", created.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 10000306, envelope.Code)

	w, envelope = doRequest(t, r, http.MethodGet, "/api/notes", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []json.RawMessage
	require.NoError(t, json.Unmarshal(envelope.Data, &list))
	assert.Empty(t, list)
}

func TestRouter_AuthRequired(t *testing.T) {
	r, _ := newTestRouter(t)

	w, envelope := doRequest(t, r, http.MethodGet, "/api/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 10000100, envelope.Code)

	w, envelope = doRequest(t, r, http.MethodGet, "/api/notes", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 10000101, envelope.Code)
}

func TestRouter_InvalidNoteID(t *testing.T) {
	r, appContainer := newTestRouter(t)
	token := newUserToken(t, appContainer, "id@example.com")

	w, envelope := doRequest(t, r, http.MethodPut, "/api/notes/abc", token, map[string]interface{}{
		"title":   "t",
		"type":    "bullet",
		"content": []interface{}{"a"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10000305, envelope.Code)
}

func TestRouter_ContentValidation(t *testing.T) {
	r, appContainer := newTestRouter(t)
	token := newUserToken(t, appContainer, "valid@example.com")

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode int
	}{
		{
			name:     "missing title",
			body:     map[string]interface{}{"type": "bullet", "content": []interface{}{"a"}},
			wantCode: 10000300,
		},
		{
			name:     "bad type",
			body:     map[string]interface{}{"title": "t", "type": "todo", "content": []interface{}{"a"}},
			wantCode: 10000301,
		},
		{
			name:     "malformed item",
			body:     map[string]interface{}{"title": "t", "type": "bullet", "content": []interface{}{1}},
			wantCode: 10000302,
		},
		{
			name:     "all blank content",
			body:     map[string]interface{}{"title": "t", "type": "bullet", "content": []interface{}{" ", ""}},
			wantCode: 10000303,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := doRequest(t, r, http.MethodPost, "/api/notes", token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, envelope.Code)
		})
	}
}

func TestRouter_RegisterValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w, envelope := doRequest(t, r, http.MethodPost, "/api/user/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "secret-pass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 10000001, envelope.Code)
	assert.NotEmpty(t, envelope.Details)
}

func TestRouter_UserInfo(t *testing.T) {
	r, appContainer := newTestRouter(t)
	token := newUserToken(t, appContainer, "info@example.com")

	w, envelope := doRequest(t, r, http.MethodGet, "/api/user/info", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user struct {
		Email string `json:"email"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &user))
	assert.Equal(t, "info@example.com", user.Email)
	// Info 不签发 Token
	assert.Empty(t, user.Token)
}

func TestRouter_NotFoundRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w, envelope := doRequest(t, r, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 10000002, envelope.Code)
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	w, envelope := doRequest(t, r, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var health struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
}
