// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	internalapp "github.com/listkeep/list-note-service/internal/app"
	"github.com/listkeep/list-note-service/internal/dto"
	"github.com/listkeep/list-note-service/pkg/app"
	"github.com/listkeep/list-note-service/pkg/code"
	"github.com/listkeep/list-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	*Handler
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(a *internalapp.App) *UserHandler {
	return &UserHandler{Handler: NewHandler(a)}
}

// Register 注册新用户
func (h *UserHandler) Register(c *gin.Context) {
	response := app.NewResponse(c)

	params := &dto.UserRegisterRequest{}
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.Errors()...))
		return
	}

	user, err := h.App.UserService.Register(c.Request.Context(), params, app.GetRequestIP(c))
	if err != nil {
		errors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreated.Clone().WithData(user))
}

// Login 登录并签发 Token
func (h *UserHandler) Login(c *gin.Context) {
	response := app.NewResponse(c)

	params := &dto.UserLoginRequest{}
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.Errors()...))
		return
	}

	user, err := h.App.UserService.Login(c.Request.Context(), params, app.GetRequestIP(c))
	if err != nil {
		errors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(user))
}

// Info 获取当前用户信息
func (h *UserHandler) Info(c *gin.Context) {
	response := app.NewResponse(c)
	uid := app.GetUID(c)

	user, err := h.App.UserService.Info(c.Request.Context(), uid)
	if err != nil {
		errors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(user))
}
