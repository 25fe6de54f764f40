// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"strconv"

	internalapp "github.com/listkeep/list-note-service/internal/app"
	"github.com/listkeep/list-note-service/internal/dto"
	"github.com/listkeep/list-note-service/pkg/app"
	"github.com/listkeep/list-note-service/pkg/code"
	"github.com/listkeep/list-note-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteHandler 笔记处理器
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建笔记处理器实例
func NewNoteHandler(a *internalapp.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// noteID parses the :id path parameter. A non-integer id is a bad
// request, never a lookup.
// noteID 解析路径中的 :id，非整数直接按参数错误处理，不查库。
func noteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		app.NewResponse(c).ToResponse(code.ErrorInvalidNoteID.Clone().WithDetails(c.Param("id")))
		return 0, false
	}
	return id, true
}

// List 获取当前用户的全部笔记，按更新时间倒序
func (h *NoteHandler) List(c *gin.Context) {
	response := app.NewResponse(c)
	uid := app.GetUID(c)

	notes, err := h.App.NoteService.List(c.Request.Context(), uid)
	if err != nil {
		errors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(notes))
}

// Create 创建笔记
func (h *NoteHandler) Create(c *gin.Context) {
	response := app.NewResponse(c)
	uid := app.GetUID(c)

	params := &dto.NoteSaveRequest{}
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.Errors()...))
		return
	}

	note, err := h.App.NoteService.Create(c.Request.Context(), uid, params)
	if err != nil {
		errors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreated.Clone().WithData(note))
}

// Update 整体替换笔记
func (h *NoteHandler) Update(c *gin.Context) {
	response := app.NewResponse(c)
	uid := app.GetUID(c)

	id, ok := noteID(c)
	if !ok {
		return
	}

	params := &dto.NoteSaveRequest{}
	valid, errs := app.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails(errs.Errors()...))
		return
	}

	note, err := h.App.NoteService.Update(c.Request.Context(), uid, id, params)
	if err != nil {
		errors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(note))
}

// Delete 删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := app.NewResponse(c)
	uid := app.GetUID(c)

	id, ok := noteID(c)
	if !ok {
		return
	}

	if err := h.App.NoteService.Delete(c.Request.Context(), uid, id); err != nil {
		errors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(dto.NoteDeleteResult{
		Message: "note deleted",
	}))
}
