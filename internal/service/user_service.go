package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/listkeep/list-note-service/internal/domain"
	"github.com/listkeep/list-note-service/internal/dto"
	pkgapp "github.com/listkeep/list-note-service/pkg/app"
	"github.com/listkeep/list-note-service/pkg/code"
	"github.com/listkeep/list-note-service/pkg/logger"
	"github.com/listkeep/list-note-service/pkg/timex"
	"github.com/listkeep/list-note-service/pkg/util"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// UserService 用户业务接口
type UserService interface {
	// Register 注册新用户并签发 Token
	Register(ctx context.Context, params *dto.UserRegisterRequest, ip string) (*dto.User, error)

	// Login 校验凭据并签发 Token
	Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.User, error)

	// Info 获取用户信息
	Info(ctx context.Context, uid int64) (*dto.User, error)
}

// userService 实现 UserService
type userService struct {
	repo         domain.UserRepository
	tokenManager pkgapp.TokenManager
	logger       *zap.Logger
	registerOpen bool
	infoFlight   singleflight.Group
}

// NewUserService 创建 UserService 实例
func NewUserService(repo domain.UserRepository, tm pkgapp.TokenManager, lg *zap.Logger, registerOpen bool) UserService {
	return &userService{
		repo:         repo,
		tokenManager: tm,
		logger:       lg,
		registerOpen: registerOpen,
	}
}

func (s *userService) toDTO(user *domain.User, token string) *dto.User {
	return &dto.User{
		UID:       user.UID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Token:     token,
		CreatedAt: timex.Time(user.CreatedAt),
	}
}

// Register 注册新用户并签发 Token
func (s *userService) Register(ctx context.Context, params *dto.UserRegisterRequest, ip string) (*dto.User, error) {
	if !s.registerOpen {
		return nil, code.ErrorUserRegisterClosed.Clone()
	}

	// 不信任传输层校验，服务层再查一遍邮箱格式
	if !util.IsValidEmail(params.Email) {
		return nil, code.ErrorInvalidParams.Clone().WithDetails("invalid email format")
	}

	if _, err := s.repo.GetByEmail(ctx, params.Email); err == nil {
		return nil, code.ErrorUserEmailExists.Clone()
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, code.ErrorUserCreateFail.Clone()
	}

	hash, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		s.logger.Error("password hash failed", zap.Error(err))
		return nil, code.ErrorUserCreateFail.Clone()
	}

	nickname := params.Nickname
	if nickname == "" {
		nickname = params.Email
	}

	user, err := s.repo.Create(ctx, &domain.User{
		Email:    params.Email,
		Nickname: nickname,
		Password: hash,
	})
	if err != nil {
		s.logger.Error("user create failed", zap.Error(err))
		return nil, code.ErrorUserCreateFail.Clone()
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		s.logger.Error("token generate failed", zap.Int64(logger.FieldUID, user.UID), zap.Error(err))
		return nil, code.ErrorUserAuthTokenGenerate.Clone()
	}

	return s.toDTO(user, token), nil
}

// Login verifies the credentials. A missing user and a wrong password
// produce the same error so probes cannot enumerate accounts.
// Login 校验凭据。用户不存在和密码错误返回同一错误，避免探测账号。
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, ip string) (*dto.User, error) {
	user, err := s.repo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorInvalidCredential.Clone()
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, code.ErrorServerInternal.Clone()
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorInvalidCredential.Clone()
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, ip)
	if err != nil {
		s.logger.Error("token generate failed", zap.Int64(logger.FieldUID, user.UID), zap.Error(err))
		return nil, code.ErrorUserAuthTokenGenerate.Clone()
	}

	return s.toDTO(user, token), nil
}

// Info 获取用户信息，并发的同一用户查询合并为一次
func (s *userService) Info(ctx context.Context, uid int64) (*dto.User, error) {
	v, err, _ := s.infoFlight.Do(strconv.FormatInt(uid, 10), func() (interface{}, error) {
		return s.repo.GetByUID(ctx, uid)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorUserNotFound.Clone()
		}
		s.logger.Error("user info failed", zap.Int64(logger.FieldUID, uid), zap.Error(err))
		return nil, code.ErrorServerInternal.Clone()
	}

	return s.toDTO(v.(*domain.User), ""), nil
}
