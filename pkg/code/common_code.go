package code

import "net/http"

// Success codes // 成功码
var (
	Success        = NewSuss(200, http.StatusOK, lang{"Success", "成功"})
	SuccessCreated = NewSuss(201, http.StatusCreated, lang{"Created", "创建成功"})
)

// Common failure codes // 通用失败码
var (
	ErrorServerInternal  = NewError(10000000, http.StatusInternalServerError, lang{"Server internal error", "服务内部错误"})
	ErrorInvalidParams   = NewError(10000001, http.StatusBadRequest, lang{"Invalid request parameters", "请求参数错误"})
	ErrorNotFoundAPI     = NewError(10000002, http.StatusNotFound, lang{"API not found", "接口不存在"})
	ErrorTooManyRequests = NewError(10000003, http.StatusTooManyRequests, lang{"Too many requests", "请求过多"})
	ErrorRequestTimeout  = NewError(10000004, http.StatusRequestTimeout, lang{"Request timed out", "请求超时"})
)

// Auth failure codes // 认证失败码
var (
	ErrorNotUserAuthToken      = NewError(10000100, http.StatusUnauthorized, lang{"Missing auth token", "缺少认证令牌"})
	ErrorInvalidUserAuthToken  = NewError(10000101, http.StatusUnauthorized, lang{"Invalid or expired auth token", "认证令牌无效或已过期"})
	ErrorUserAuthTokenGenerate = NewError(10000102, http.StatusInternalServerError, lang{"Failed to generate auth token", "生成认证令牌失败"})
)

// User module codes // 用户模块码
var (
	ErrorInvalidCredential  = NewError(10000200, http.StatusUnauthorized, lang{"Email or password is incorrect", "邮箱或密码错误"})
	ErrorUserEmailExists    = NewError(10000201, http.StatusBadRequest, lang{"Email is already registered", "邮箱已被注册"})
	ErrorUserNotFound       = NewError(10000202, http.StatusNotFound, lang{"User does not exist", "用户不存在"})
	ErrorUserCreateFail     = NewError(10000203, http.StatusInternalServerError, lang{"Failed to create user", "创建用户失败"})
	ErrorUserRegisterClosed = NewError(10000204, http.StatusBadRequest, lang{"Registration is disabled", "注册已关闭"})
)

// Note module codes // 笔记模块码
var (
	ErrorMissingField     = NewError(10000300, http.StatusBadRequest, lang{"A required field is missing", "缺少必填字段"})
	ErrorInvalidNoteType  = NewError(10000301, http.StatusBadRequest, lang{"Unknown note type", "未知的笔记类型"})
	ErrorInvalidItemShape = NewError(10000302, http.StatusBadRequest, lang{"Content item has an invalid shape", "内容条目结构非法"})
	ErrorEmptyContent     = NewError(10000303, http.StatusBadRequest, lang{"Content has no non-blank item", "内容没有非空条目"})
	ErrorTitleTooLong     = NewError(10000304, http.StatusBadRequest, lang{"Title is too long", "标题超长"})
	ErrorInvalidNoteID    = NewError(10000305, http.StatusBadRequest, lang{"Invalid note id", "笔记 ID 非法"})
	ErrorNoteNotFound     = NewError(10000306, http.StatusNotFound, lang{"Note does not exist", "笔记不存在"})
	ErrorNoteSaveFail     = NewError(10000307, http.StatusInternalServerError, lang{"Failed to save note", "保存笔记失败"})
)
