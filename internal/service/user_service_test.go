package service

import (
	"context"
	"testing"

	"github.com/listkeep/list-note-service/internal/domain"
	"github.com/listkeep/list-note-service/internal/dto"
	pkgapp "github.com/listkeep/list-note-service/pkg/app"
	"github.com/listkeep/list-note-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockUserRepo 内存实现
type mockUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	copied := *user
	copied.UID = m.nextID
	m.nextID++
	m.users[copied.Email] = &copied
	result := copied
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	for _, user := range m.users {
		if user.UID == uid {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func newTestUserService(registerOpen bool) (UserService, *mockUserRepo) {
	repo := newMockUserRepo()
	tm := pkgapp.NewTokenManager(pkgapp.TokenConfig{SecretKey: "test-secret"})
	return NewUserService(repo, tm, zap.NewNop(), registerOpen), repo
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestUserService(true)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.UserRegisterRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.NotZero(t, registered.UID)
	assert.NotEmpty(t, registered.Token)
	// 昵称缺省取邮箱
	assert.Equal(t, "a@example.com", registered.Nickname)

	// 重复注册
	_, err = svc.Register(ctx, &dto.UserRegisterRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
	}, "127.0.0.1")
	assert.Equal(t, code.ErrorUserEmailExists.Code(), codeOf(t, err).Code())

	// 登录成功
	logged, err := svc.Login(ctx, &dto.UserLoginRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
	}, "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, registered.UID, logged.UID)
	assert.NotEmpty(t, logged.Token)

	// 密码错误与用户不存在返回同一错误
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Email: "a@example.com", Password: "wrong"}, "")
	assert.Equal(t, code.ErrorInvalidCredential.Code(), codeOf(t, err).Code())
	_, err = svc.Login(ctx, &dto.UserLoginRequest{Email: "nobody@example.com", Password: "wrong"}, "")
	assert.Equal(t, code.ErrorInvalidCredential.Code(), codeOf(t, err).Code())
}

func TestUserService_RegisterClosed(t *testing.T) {
	svc, _ := newTestUserService(false)

	_, err := svc.Register(context.Background(), &dto.UserRegisterRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
	}, "")
	assert.Equal(t, code.ErrorUserRegisterClosed.Code(), codeOf(t, err).Code())
}

func TestUserService_Info(t *testing.T) {
	svc, _ := newTestUserService(true)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.UserRegisterRequest{
		Email:    "a@example.com",
		Password: "secret-pass",
		Nickname: "alpha",
	}, "")
	require.NoError(t, err)

	info, err := svc.Info(ctx, registered.UID)
	require.NoError(t, err)
	assert.Equal(t, "alpha", info.Nickname)
	// Info 不签发 Token
	assert.Empty(t, info.Token)

	_, err = svc.Info(ctx, 9999)
	assert.Equal(t, code.ErrorUserNotFound.Code(), codeOf(t, err).Code())
}
