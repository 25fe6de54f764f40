package dao

import (
	"context"
	"testing"
	"time"

	"github.com/listkeep/list-note-service/internal/domain"
	"github.com/listkeep/list-note-service/internal/model"
	"github.com/listkeep/list-note-service/pkg/notecontent"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))

	return New(db)
}

func testNote(uid int64, title string) *domain.Note {
	return &domain.Note{
		UID:     uid,
		Title:   title,
		Type:    notecontent.TypeBullet,
		Content: notecontent.Items{notecontent.PlainText("first line")},
	}
}

func TestNoteRepository_CreateAndGet(t *testing.T) {
	repo := NewNoteRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, testNote(1, "groceries"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "groceries", got.Title)
	assert.Equal(t, notecontent.TypeBullet, got.Type)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "first line", got.Content[0].Text())
}

func TestNoteRepository_OwnershipScoping(t *testing.T) {
	repo := NewNoteRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, testNote(1, "mine"))
	require.NoError(t, err)

	// 其他用户访问与不存在等价
	_, err = repo.GetByID(ctx, created.ID, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = repo.Delete(ctx, created.ID, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := *created
	other.UID = 2
	other.Title = "hijacked"
	_, err = repo.Update(ctx, &other)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// 原主人不受影响
	got, err := repo.GetByID(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Title)
}

func TestNoteRepository_UpdateRefreshesUpdatedAtOnly(t *testing.T) {
	repo := NewNoteRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, testNote(1, "before"))
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond) // updated_at 秒级精度

	created.Title = "after"
	created.Type = notecontent.TypeChecklist
	created.Content = notecontent.Items{notecontent.ChecklistEntry("done", true)}
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, notecontent.TypeChecklist, updated.Type)
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	assert.Greater(t, updated.UpdatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestNoteRepository_ListSortedByUpdatedAtDesc(t *testing.T) {
	repo := NewNoteRepository(newTestDao(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, testNote(1, "older"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testNote(1, "newer"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, testNote(2, "foreign"))
	require.NoError(t, err)

	time.Sleep(1100 * time.Millisecond)
	first.Title = "older but touched"
	_, err = repo.Update(ctx, first)
	require.NoError(t, err)

	notes, err := repo.ListByUID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "older but touched", notes[0].Title)
	assert.Equal(t, "newer", notes[1].Title)
}

func TestNoteRepository_DeleteAndPurge(t *testing.T) {
	d := newTestDao(t)
	repo := NewNoteRepository(d)
	ctx := context.Background()

	created, err := repo.Create(ctx, testNote(1, "doomed"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID, 1))

	// 软删除后对 API 层不可见
	_, err = repo.GetByID(ctx, created.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = repo.Delete(ctx, created.ID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// 行仍然存在，直到清理任务运行
	var total int64
	require.NoError(t, d.Db.Unscoped().Model(&model.Note{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)

	purged, err := repo.PurgeDeleted(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	require.NoError(t, d.Db.Unscoped().Model(&model.Note{}).Count(&total).Error)
	assert.Zero(t, total)
}

func TestUserRepository_CreateAndLookup(t *testing.T) {
	repo := NewUserRepository(newTestDao(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{
		Email:    "a@example.com",
		Nickname: "a",
		Password: "hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.UID)

	byEmail, err := repo.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.UID, byEmail.UID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	byUID, err := repo.GetByUID(ctx, created.UID)
	require.NoError(t, err)
	assert.Equal(t, "a", byUID.Nickname)

	// 重复邮箱触发唯一索引
	_, err = repo.Create(ctx, &domain.User{Email: "a@example.com", Password: "hash"})
	assert.Error(t, err)
}
