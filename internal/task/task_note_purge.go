package task

import (
	"context"
	"time"

	"github.com/listkeep/list-note-service/internal/app"
	"github.com/listkeep/list-note-service/internal/domain"
	"github.com/listkeep/list-note-service/pkg/logger"

	"go.uber.org/zap"
)

func init() {
	Register(NewNotePurgeTask)
}

// NotePurgeTask permanently removes soft deleted notes once their
// retention window has passed.
// NotePurgeTask 永久清除超过保留期的软删除笔记。
type NotePurgeTask struct {
	repo      domain.NoteRepository
	logger    *zap.Logger
	retention time.Duration
	cronSpec  string
}

// NewNotePurgeTask 创建清理任务，保留期为 0 时禁用
func NewNotePurgeTask(a *app.App) (Task, error) {
	retention := a.Config().GetSoftDeleteRetention()
	if retention <= 0 {
		a.Logger().Info("note purge task is disabled (retention time not configured)")
		return nil, nil
	}

	return &NotePurgeTask{
		repo:      a.NoteRepo,
		logger:    a.Logger(),
		retention: retention,
		cronSpec:  a.Config().App.NotePurgeCron,
	}, nil
}

// Name 任务名称
func (t *NotePurgeTask) Name() string {
	return "note_purge"
}

// CronSpec cron 表达式
func (t *NotePurgeTask) CronSpec() string {
	return t.cronSpec
}

// IsStartupRun 启动时先清理一轮
func (t *NotePurgeTask) IsStartupRun() bool {
	return true
}

// Run 执行清理
func (t *NotePurgeTask) Run(ctx context.Context) error {
	before := time.Now().Add(-t.retention)

	count, err := t.repo.PurgeDeleted(ctx, before)
	if err != nil {
		return err
	}

	if count > 0 {
		t.logger.Info("purged soft deleted notes",
			zap.Int64(logger.FieldCount, count),
			zap.Time("before", before))
	}
	return nil
}
