// Package domain 定义领域模型和接口
package domain

import (
	"time"

	"github.com/listkeep/list-note-service/pkg/notecontent"
)

// Note 笔记领域模型
// Content 始终保存规范化后的条目
type Note struct {
	ID        int64
	UID       int64
	Title     string
	Type      notecontent.NoteType
	Content   notecontent.Items
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsChecklist 判断是否为清单笔记
func (n *Note) IsChecklist() bool {
	return n.Type == notecontent.TypeChecklist
}
