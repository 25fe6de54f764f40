// Package service 实现业务逻辑层
package service

import (
	"github.com/listkeep/list-note-service/pkg/code"
	"github.com/listkeep/list-note-service/pkg/notecontent"
)

// mapContentError translates a normalizer validation failure into the
// matching business code. Unknown errors fall through to the caller.
// mapContentError 将规范化校验错误映射为业务码，未知错误原样返回。
func mapContentError(err error) error {
	switch notecontent.KindOf(err) {
	case notecontent.KindMissingField:
		return code.ErrorMissingField.Clone().WithDetails(err.Error())
	case notecontent.KindInvalidType:
		return code.ErrorInvalidNoteType.Clone().WithDetails(err.Error())
	case notecontent.KindInvalidItemShape:
		return code.ErrorInvalidItemShape.Clone().WithDetails(err.Error())
	case notecontent.KindEmptyContent:
		return code.ErrorEmptyContent.Clone().WithDetails(err.Error())
	case notecontent.KindTitleTooLong:
		return code.ErrorTitleTooLong.Clone().WithDetails(err.Error())
	}
	return err
}
