// Package notecontent defines the note content model shared by the API
// service and the client: the note type enum, the polymorphic content
// item and its canonical normalization rules.
// Package notecontent 定义服务端与客户端共享的笔记内容模型：
// 笔记类型枚举、多态内容条目以及规范化规则。
package notecontent

import (
	"encoding/json"
)

// NoteType note type enum // 笔记类型枚举
type NoteType string

const (
	// TypeBullet plain bulleted list // 无序列表
	TypeBullet NoteType = "bullet"
	// TypeChecklist checkable list // 可勾选清单
	TypeChecklist NoteType = "checklist"
)

// Valid reports whether t is a recognized note type
// Valid 判断是否为合法的笔记类型
func (t NoteType) Valid() bool {
	return t == TypeBullet || t == TypeChecklist
}

// Kind content item variant tag // 内容条目变体标记
type Kind int

const (
	// KindPlainText bare text line, used by bullet notes
	// KindPlainText 纯文本行，用于无序列表
	KindPlainText Kind = iota + 1
	// KindChecklistEntry structured line with a mark state
	// KindChecklistEntry 带勾选状态的结构化行
	KindChecklistEntry
)

// Item is one line of a note body. It is a tagged variant with two
// constructors: PlainText and ChecklistEntry. On the wire a plain text
// item is a bare JSON string and a checklist entry is an object
// {"text": ..., "isMarked": ...}, matching what stored notes and
// clients exchange.
// Item 是笔记正文的一行，带标记的二选一变体。
// 纯文本条目在 JSON 中是裸字符串，清单条目是 {"text","isMarked"} 对象。
type Item struct {
	kind   Kind
	text   string
	marked bool
}

// PlainText constructs a plain text item
// PlainText 构造纯文本条目
func PlainText(text string) Item {
	return Item{kind: KindPlainText, text: text}
}

// ChecklistEntry constructs a checklist item with a mark state
// ChecklistEntry 构造带勾选状态的清单条目
func ChecklistEntry(text string, marked bool) Item {
	return Item{kind: KindChecklistEntry, text: text, marked: marked}
}

// Kind returns the variant tag // 返回变体标记
func (i Item) Kind() Kind {
	return i.kind
}

// Text returns the item text // 返回条目文本
func (i Item) Text() string {
	return i.text
}

// IsMarked returns the mark state; always false for plain text items
// IsMarked 返回勾选状态；纯文本条目恒为 false
func (i Item) IsMarked() bool {
	return i.kind == KindChecklistEntry && i.marked
}

// checklistEntryJSON wire shape of the structured variant
// checklistEntryJSON 结构化变体的传输格式
type checklistEntryJSON struct {
	Text     string `json:"text"`
	IsMarked bool   `json:"isMarked"`
}

// MarshalJSON encodes the item per its variant: bare string or object
// MarshalJSON 按变体序列化：裸字符串或对象
func (i Item) MarshalJSON() ([]byte, error) {
	if i.kind == KindChecklistEntry {
		return json.Marshal(checklistEntryJSON{Text: i.text, IsMarked: i.marked})
	}
	return json.Marshal(i.text)
}

// UnmarshalJSON decodes a bare string into the plain text variant and a
// {"text","isMarked"} object into the checklist variant. Any other JSON
// shape, an object without a string "text", or a non-boolean "isMarked"
// fails with KindInvalidItemShape.
// UnmarshalJSON 将裸字符串解析为纯文本变体，将对象解析为清单变体；
// 其它形状一律返回 KindInvalidItemShape 错误。
func (i *Item) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*i = PlainText(s)
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return newError(KindInvalidItemShape, "content item must be a string or an object")
	}

	rawText, ok := obj["text"]
	if !ok {
		return newError(KindInvalidItemShape, "content item object is missing a text field")
	}
	var text string
	if err := json.Unmarshal(rawText, &text); err != nil {
		return newError(KindInvalidItemShape, "content item text must be a string")
	}

	marked := false
	if rawMarked, ok := obj["isMarked"]; ok {
		if err := json.Unmarshal(rawMarked, &marked); err != nil {
			return newError(KindInvalidItemShape, "content item isMarked must be a boolean")
		}
	}

	*i = ChecklistEntry(text, marked)
	return nil
}

// Items ordered note content // 有序的笔记内容
type Items []Item

// Encode serializes items to the JSON document stored in the database
// Encode 序列化为数据库存储的 JSON 文档
func (items Items) Encode() (string, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeItems parses the stored JSON document back into items
// DecodeItems 将存储的 JSON 文档解析回条目列表
func DecodeItems(s string) (Items, error) {
	if s == "" {
		return nil, nil
	}
	var items Items
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil, err
	}
	return items, nil
}
