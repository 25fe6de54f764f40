package notecontent

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TitleMaxLength maximum title length after trimming
// TitleMaxLength 标题去除首尾空白后的最大长度
const TitleMaxLength = 200

// ErrorKind validation failure category // 校验失败类别
type ErrorKind string

const (
	// KindMissingField a required field is absent or has the wrong shape
	// KindMissingField 必填字段缺失或形状错误
	KindMissingField ErrorKind = "missing_field"
	// KindInvalidType the note type is not a recognized enum value
	// KindInvalidType 笔记类型不是合法枚举值
	KindInvalidType ErrorKind = "invalid_type"
	// KindInvalidItemShape a content item is structurally invalid
	// KindInvalidItemShape 内容条目结构非法
	KindInvalidItemShape ErrorKind = "invalid_item_shape"
	// KindEmptyContent no item survived blank filtering
	// KindEmptyContent 过滤空白后没有剩余条目
	KindEmptyContent ErrorKind = "empty_content"
	// KindTitleTooLong the trimmed title exceeds TitleMaxLength
	// KindTitleTooLong 标题超长
	KindTitleTooLong ErrorKind = "title_too_long"
)

// ValidationError is the single error type this package reports.
// Blank items are recoverable and silently dropped; only structurally
// invalid input produces a ValidationError.
// ValidationError 是本包唯一的错误类型。
// 空白条目可恢复、直接丢弃；仅结构性非法输入才返回错误。
type ValidationError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface // 实现 error 接口
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, message string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message}
}

// KindOf returns the validation kind of err, or "" when err is not a
// ValidationError.
// KindOf 返回错误的校验类别，非 ValidationError 返回空串。
func KindOf(err error) ErrorKind {
	if v, ok := err.(*ValidationError); ok {
		return v.Kind
	}
	return ""
}

// ValidateTitle trims the title and enforces presence and the length
// cap, returning the canonical (trimmed) title.
// ValidateTitle 去除首尾空白并校验非空与长度上限，返回规范化标题。
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", newError(KindMissingField, "title is required")
	}
	if utf8.RuneCountInString(trimmed) > TitleMaxLength {
		return "", newError(KindTitleTooLong, fmt.Sprintf("title exceeds %d characters", TitleMaxLength))
	}
	return trimmed, nil
}

// Normalize decodes raw JSON content and canonicalizes it for the
// declared note type. The raw value must be a JSON array; absence,
// null, or any other JSON shape fails with KindMissingField. Item
// decoding failures surface as KindInvalidItemShape.
// Normalize 解码原始 JSON 内容并按声明类型规范化。
// 原始值必须是 JSON 数组；缺失、null 或其它形状返回 KindMissingField。
func Normalize(t NoteType, raw json.RawMessage) (Items, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, newError(KindMissingField, "content is required")
	}
	if !strings.HasPrefix(trimmed, "[") {
		return nil, newError(KindMissingField, "content must be a list")
	}

	var items Items
	if err := json.Unmarshal(raw, &items); err != nil {
		if v, ok := err.(*ValidationError); ok {
			return nil, v
		}
		return nil, newError(KindInvalidItemShape, "content item could not be decoded")
	}

	return NormalizeItems(t, items)
}

// NormalizeItems canonicalizes already-decoded items for the declared
// note type:
//  1. items whose text is blank after trimming are dropped;
//  2. for checklist notes every surviving plain text item becomes an
//     unmarked checklist entry, existing entries keep their mark state;
//  3. for bullet notes every surviving checklist entry is flattened to
//     its text, discarding the mark state;
//  4. an empty survivor list fails with KindEmptyContent.
//
// Order is always preserved and the transform is idempotent; item text
// is kept verbatim, trimming is only used to detect blanks.
// NormalizeItems 规范化已解码的条目：丢弃空白行、按声明类型做变体转换、
// 结果为空则返回 KindEmptyContent。顺序保持不变，变换满足幂等。
func NormalizeItems(t NoteType, items Items) (Items, error) {
	if !t.Valid() {
		return nil, newError(KindInvalidType, fmt.Sprintf("unknown note type %q", string(t)))
	}

	out := make(Items, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Text()) == "" {
			continue
		}

		switch {
		case t == TypeChecklist && item.Kind() == KindPlainText:
			out = append(out, ChecklistEntry(item.Text(), false))
		case t == TypeBullet && item.Kind() == KindChecklistEntry:
			out = append(out, PlainText(item.Text()))
		default:
			out = append(out, item)
		}
	}

	if len(out) == 0 {
		return nil, newError(KindEmptyContent, "content must have at least one non-blank item")
	}
	return out, nil
}
