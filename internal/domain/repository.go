// Package domain 定义领域模型和接口
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user. The two cases are indistinguishable on purpose.
// ErrNotFound 表示记录不存在或属于其他用户，两者刻意不作区分。
var ErrNotFound = errors.New("record not found")

// NoteRepository 笔记仓储接口
type NoteRepository interface {
	// GetByID 根据ID获取笔记，uid 限定归属
	GetByID(ctx context.Context, id, uid int64) (*Note, error)

	// Create 创建笔记
	Create(ctx context.Context, note *Note) (*Note, error)

	// Update 更新笔记的标题、类型和内容，刷新更新时间
	Update(ctx context.Context, note *Note) (*Note, error)

	// Delete 软删除笔记
	Delete(ctx context.Context, id, uid int64) error

	// ListByUID 按更新时间倒序获取用户全部笔记
	ListByUID(ctx context.Context, uid int64) ([]*Note, error)

	// PurgeDeleted 物理删除软删除时间早于 before 的笔记，返回删除数量
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)
}
