package task

import (
	"context"
	"testing"
	"time"

	"github.com/listkeep/list-note-service/internal/domain"
	"github.com/listkeep/list-note-service/pkg/safe_close"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// purgeRecorder 记录清理调用
type purgeRecorder struct {
	domain.NoteRepository
	before time.Time
	count  int64
}

func (r *purgeRecorder) PurgeDeleted(ctx context.Context, before time.Time) (int64, error) {
	r.before = before
	return r.count, nil
}

func TestNotePurgeTask_Run(t *testing.T) {
	repo := &purgeRecorder{count: 3}
	purge := &NotePurgeTask{
		repo:      repo,
		logger:    zap.NewNop(),
		retention: 7 * 24 * time.Hour,
		cronSpec:  "*/10 * * * *",
	}

	require.NoError(t, purge.Run(context.Background()))

	// 截止时间为当前时间减去保留期
	expected := time.Now().Add(-7 * 24 * time.Hour)
	assert.WithinDuration(t, expected, repo.before, 5*time.Second)
}

func TestScheduler_RejectsBadCronSpec(t *testing.T) {
	sc := safe_close.NewSafeClose()
	scheduler := NewScheduler(zap.NewNop(), sc)

	err := scheduler.AddTask(&NotePurgeTask{
		repo:     &purgeRecorder{},
		logger:   zap.NewNop(),
		cronSpec: "not a cron spec",
	})
	assert.Error(t, err)
}
