package service

import (
	"context"
	"errors"

	"github.com/listkeep/list-note-service/internal/domain"
	"github.com/listkeep/list-note-service/internal/dto"
	"github.com/listkeep/list-note-service/pkg/code"
	"github.com/listkeep/list-note-service/pkg/logger"
	"github.com/listkeep/list-note-service/pkg/notecontent"
	"github.com/listkeep/list-note-service/pkg/timex"

	"go.uber.org/zap"
)

// NoteService 笔记业务接口
// uid 是调用者身份，始终由处理器显式传入
type NoteService interface {
	// List 按更新时间倒序返回用户的全部笔记
	List(ctx context.Context, uid int64) ([]*dto.Note, error)

	// Create 校验并创建笔记
	Create(ctx context.Context, uid int64, params *dto.NoteSaveRequest) (*dto.Note, error)

	// Update 校验并整体替换笔记
	Update(ctx context.Context, uid, id int64, params *dto.NoteSaveRequest) (*dto.Note, error)

	// Delete 删除笔记
	Delete(ctx context.Context, uid, id int64) error
}

// noteService 实现 NoteService
type noteService struct {
	repo   domain.NoteRepository
	logger *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(repo domain.NoteRepository, lg *zap.Logger) NoteService {
	return &noteService{repo: repo, logger: lg}
}

// toDTO 将领域模型转换为响应结构
func toDTO(note *domain.Note) *dto.Note {
	return &dto.Note{
		ID:        note.ID,
		UID:       note.UID,
		Title:     note.Title,
		Type:      string(note.Type),
		Content:   note.Content,
		CreatedAt: timex.Time(note.CreatedAt),
		UpdatedAt: timex.Time(note.UpdatedAt),
	}
}

// validate runs the canonical validation order: title presence, title
// length, note type, content normalization.
// validate 按固定顺序校验：标题非空、标题长度、类型、内容规范化。
func (s *noteService) validate(params *dto.NoteSaveRequest) (string, notecontent.NoteType, notecontent.Items, error) {
	title, err := notecontent.ValidateTitle(params.Title)
	if err != nil {
		return "", "", nil, mapContentError(err)
	}

	noteType := notecontent.NoteType(params.Type)
	if params.Type == "" {
		return "", "", nil, code.ErrorMissingField.Clone().WithDetails("type is required")
	}
	if !noteType.Valid() {
		return "", "", nil, code.ErrorInvalidNoteType.Clone().WithDetails("unknown note type " + params.Type)
	}

	items, err := notecontent.Normalize(noteType, params.Content)
	if err != nil {
		return "", "", nil, mapContentError(err)
	}

	return title, noteType, items, nil
}

// List 按更新时间倒序返回用户的全部笔记
func (s *noteService) List(ctx context.Context, uid int64) ([]*dto.Note, error) {
	notes, err := s.repo.ListByUID(ctx, uid)
	if err != nil {
		s.logger.Error("note list failed", zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return nil, code.ErrorServerInternal.Clone()
	}

	out := make([]*dto.Note, 0, len(notes))
	for _, note := range notes {
		out = append(out, toDTO(note))
	}
	return out, nil
}

// Create 校验并创建笔记
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteSaveRequest) (*dto.Note, error) {
	title, noteType, items, err := s.validate(params)
	if err != nil {
		return nil, err
	}

	note, err := s.repo.Create(ctx, &domain.Note{
		UID:     uid,
		Title:   title,
		Type:    noteType,
		Content: items,
	})
	if err != nil {
		s.logger.Error("note create failed", zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return nil, code.ErrorNoteSaveFail.Clone()
	}
	return toDTO(note), nil
}

// Update 校验并整体替换笔记；其他用户的笔记与不存在的笔记同样返回未找到
func (s *noteService) Update(ctx context.Context, uid, id int64, params *dto.NoteSaveRequest) (*dto.Note, error) {
	title, noteType, items, err := s.validate(params)
	if err != nil {
		return nil, err
	}

	note, err := s.repo.Update(ctx, &domain.Note{
		ID:      id,
		UID:     uid,
		Title:   title,
		Type:    noteType,
		Content: items,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorNoteNotFound.Clone()
		}
		s.logger.Error("note update failed",
			zap.Int64(logger.FieldUID, uid), zap.Int64(logger.FieldNoteID, id), zap.Error(err))
		return nil, code.ErrorNoteSaveFail.Clone()
	}
	return toDTO(note), nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, uid, id int64) error {
	if err := s.repo.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorNoteNotFound.Clone()
		}
		s.logger.Error("note delete failed",
			zap.Int64(logger.FieldUID, uid), zap.Int64(logger.FieldNoteID, id), zap.Error(err))
		return code.ErrorServerInternal.Clone()
	}
	return nil
}
