// Package dto 定义请求与响应结构
package dto

import (
	"encoding/json"

	"github.com/listkeep/list-note-service/pkg/notecontent"
	"github.com/listkeep/list-note-service/pkg/timex"
)

// NoteSaveRequest is the body of note create and update requests.
// Content stays raw here: shape checks belong to the normalizer, which
// distinguishes absent, null and malformed lists.
// NoteSaveRequest 创建与更新笔记共用的请求体。
// Content 保留原始 JSON，形状校验交给规范化器。
type NoteSaveRequest struct {
	Title   string          `json:"title" form:"title"`
	Type    string          `json:"type" form:"type"`
	Content json.RawMessage `json:"content" form:"content"`
}

// Note 笔记响应
type Note struct {
	ID        int64             `json:"id"`
	UID       int64             `json:"uid"`
	Title     string            `json:"title"`
	Type      string            `json:"type"`
	Content   notecontent.Items `json:"content"`
	CreatedAt timex.Time        `json:"createdAt"`
	UpdatedAt timex.Time        `json:"updatedAt"`
}

// NoteDeleteResult 删除确认
type NoteDeleteResult struct {
	Message string `json:"message"`
}
