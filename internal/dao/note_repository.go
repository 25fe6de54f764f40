// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/listkeep/list-note-service/internal/domain"
	"github.com/listkeep/list-note-service/internal/model"
	"github.com/listkeep/list-note-service/pkg/notecontent"
	"github.com/listkeep/list-note-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// noteRepository 实现 domain.NoteRepository 接口
type noteRepository struct {
	dao *Dao
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(dao *Dao) domain.NoteRepository {
	return &noteRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *noteRepository) toDomain(m *model.Note) (*domain.Note, error) {
	if m == nil {
		return nil, nil
	}
	items, err := notecontent.DecodeItems(m.Content)
	if err != nil {
		return nil, err
	}
	return &domain.Note{
		ID:        m.ID,
		UID:       m.UID,
		Title:     m.Title,
		Type:      notecontent.NoteType(m.Type),
		Content:   items,
		CreatedAt: m.CreatedAt.Time(),
		UpdatedAt: m.UpdatedAt.Time(),
	}, nil
}

// toModel 将领域模型转换为数据库模型
func (r *noteRepository) toModel(note *domain.Note) (*model.Note, error) {
	if note == nil {
		return nil, nil
	}
	content, err := note.Content.Encode()
	if err != nil {
		return nil, err
	}
	return &model.Note{
		ID:        note.ID,
		UID:       note.UID,
		Title:     note.Title,
		Type:      string(note.Type),
		Content:   content,
		CreatedAt: timex.Time(note.CreatedAt),
		UpdatedAt: timex.Time(note.UpdatedAt),
	}, nil
}

// GetByID 根据ID获取笔记，uid 限定归属
func (r *noteRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Note, error) {
	var m model.Note
	err := r.dao.Db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.toDomain(&m)
}

// Create 创建笔记，设置创建和更新时间
func (r *noteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	m, err := r.toModel(note)
	if err != nil {
		return nil, err
	}
	if err := r.dao.Db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m)
}

// Update replaces title, type and content of the caller's note and
// refreshes the update time. The create time never changes.
// Update 替换标题、类型和内容并刷新更新时间，创建时间保持不变。
func (r *noteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	content, err := note.Content.Encode()
	if err != nil {
		return nil, err
	}
	updatedAt := timex.Time(time.Now())

	result := r.dao.Db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND uid = ?", note.ID, note.UID).
		Updates(map[string]interface{}{
			"title":      note.Title,
			"type":       string(note.Type),
			"content":    content,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByID(ctx, note.ID, note.UID)
}

// Delete 软删除笔记
func (r *noteRepository) Delete(ctx context.Context, id, uid int64) error {
	result := r.dao.Db.WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Note{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUID 按更新时间倒序获取用户全部笔记
func (r *noteRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Note, error) {
	var ms []*model.Note
	err := r.dao.Db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	notes := make([]*domain.Note, 0, len(ms))
	for _, m := range ms {
		note, err := r.toDomain(m)
		if err != nil {
			// 损坏的行跳过而不是整表失败
			r.dao.logger.Error("note content decode failed",
				zap.Int64("noteId", m.ID), zap.Error(err))
			continue
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// PurgeDeleted 物理删除软删除时间早于 before 的笔记
func (r *noteRepository) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	result := r.dao.Db.WithContext(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", before).
		Delete(&model.Note{})
	return result.RowsAffected, result.Error
}
