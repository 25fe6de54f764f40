package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/listkeep/list-note-service/pkg/notecontent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_LoginStoresToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 200, "status": true,
				"data": map[string]interface{}{"uid": 1, "email": "a@example.com", "token": "tok-123"},
			})
		case "/api/notes":
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]interface{}{
				"code": 200, "status": true, "data": []interface{}{},
			})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	user, err := c.Login(context.Background(), "a@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", user.Token)
	assert.Equal(t, "tok-123", c.Token())

	_, err = c.Notes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 10000306, "status": false, "message": "Note does not exist",
		})
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok"))
	err := c.DeleteNote(context.Background(), 42)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, 10000306, apiErr.Code)
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
}

func TestClient_CreateNoteValidatesLocally(t *testing.T) {
	// 本地校验失败不应发出任何请求
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer server.Close()

	c := New(server.URL, WithToken("tok"))
	_, err := c.CreateNote(context.Background(), &Draft{
		Title:   "t",
		Type:    "todo",
		Content: notecontent.Items{notecontent.PlainText("a")},
	})
	assert.Error(t, err)

	_, err = c.CreateNote(context.Background(), &Draft{
		Title:   "  ",
		Type:    notecontent.TypeBullet,
		Content: notecontent.Items{notecontent.PlainText("a")},
	})
	assert.Equal(t, notecontent.KindMissingField, notecontent.KindOf(err))
}

func TestDraft_ValidateNormalizes(t *testing.T) {
	draft := &Draft{
		Title: "  chores  ",
		Type:  notecontent.TypeChecklist,
		Content: notecontent.Items{
			notecontent.PlainText("wash dishes"),
			notecontent.PlainText("   "),
			notecontent.ChecklistEntry("laundry", true),
		},
	}
	require.NoError(t, draft.Validate())

	assert.Equal(t, "chores", draft.Title)
	// 空白条目剔除，纯文本提升为勾选项
	require.Len(t, draft.Content, 2)
	assert.Equal(t, notecontent.KindChecklistEntry, draft.Content[0].Kind())
	assert.False(t, draft.Content[0].IsMarked())
	assert.True(t, draft.Content[1].IsMarked())
}
