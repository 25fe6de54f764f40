// Package model 定义数据库表模型
package model

import (
	"github.com/listkeep/list-note-service/pkg/timex"

	"gorm.io/gorm"
)

// Note 笔记表
// content 列保存规范化后的条目 JSON 文档
type Note struct {
	ID        int64          `gorm:"column:id;primaryKey;autoIncrement"`
	UID       int64          `gorm:"column:uid;not null;index:idx_note_uid_updated,priority:1"`
	Title     string         `gorm:"column:title;size:200;not null"`
	Type      string         `gorm:"column:type;size:16;not null"`
	Content   string         `gorm:"column:content;type:text"`
	CreatedAt timex.Time     `gorm:"column:created_at"`
	UpdatedAt timex.Time     `gorm:"column:updated_at;index:idx_note_uid_updated,priority:2"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName 表名
func (Note) TableName() string {
	return "note"
}

// User 用户表
type User struct {
	UID       int64          `gorm:"column:uid;primaryKey;autoIncrement"`
	Email     string         `gorm:"column:email;size:120;not null;uniqueIndex"`
	Nickname  string         `gorm:"column:nickname;size:60"`
	Password  string         `gorm:"column:password;size:120;not null"`
	CreatedAt timex.Time     `gorm:"column:created_at"`
	UpdatedAt timex.Time     `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

// TableName 表名
func (User) TableName() string {
	return "user"
}

// AutoMigrate 迁移全部表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Note{})
}
