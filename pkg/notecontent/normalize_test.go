package notecontent

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_ChecklistCoercion(t *testing.T) {
	// Plain strings become unmarked entries, existing entries keep
	// their mark, blanks are dropped, order is preserved.
	// 纯字符串变为未勾选条目，已有条目保留勾选状态，空白被丢弃，顺序不变。
	raw := json.RawMessage(`["a", {"text": "b", "isMarked": true}, "  "]`)

	items, err := Normalize(TypeChecklist, raw)
	assert.Nil(t, err)
	assert.Len(t, items, 2)

	assert.Equal(t, KindChecklistEntry, items[0].Kind())
	assert.Equal(t, "a", items[0].Text())
	assert.False(t, items[0].IsMarked())

	assert.Equal(t, KindChecklistEntry, items[1].Kind())
	assert.Equal(t, "b", items[1].Text())
	assert.True(t, items[1].IsMarked())
}

func TestNormalize_BulletFlattening(t *testing.T) {
	// Entries are flattened to text, the mark state is discarded.
	// 条目被拍平为文本，勾选状态被丢弃。
	raw := json.RawMessage(`[{"text": "x", "isMarked": true}, "y"]`)

	items, err := Normalize(TypeBullet, raw)
	assert.Nil(t, err)
	assert.Len(t, items, 2)

	assert.Equal(t, KindPlainText, items[0].Kind())
	assert.Equal(t, "x", items[0].Text())
	assert.Equal(t, KindPlainText, items[1].Kind())
	assert.Equal(t, "y", items[1].Text())
}

func TestNormalize_Failures(t *testing.T) {
	tests := []struct {
		name     string
		noteType NoteType
		raw      string
		wantKind ErrorKind
	}{
		{"all blank", TypeBullet, `["", "   ", {"text": "\t"}]`, KindEmptyContent},
		{"empty list", TypeChecklist, `[]`, KindEmptyContent},
		{"missing content", TypeBullet, ``, KindMissingField},
		{"null content", TypeBullet, `null`, KindMissingField},
		{"content not a list", TypeBullet, `"just a string"`, KindMissingField},
		{"content object", TypeChecklist, `{"text": "a"}`, KindMissingField},
		{"unknown type", NoteType("outline"), `["a"]`, KindInvalidType},
		{"numeric item", TypeBullet, `[42]`, KindInvalidItemShape},
		{"object without text", TypeChecklist, `[{"isMarked": true}]`, KindInvalidItemShape},
		{"non-string text", TypeChecklist, `[{"text": 7}]`, KindInvalidItemShape},
		{"non-bool mark", TypeChecklist, `[{"text": "a", "isMarked": "yes"}]`, KindInvalidItemShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.noteType, json.RawMessage(tt.raw))
			if err == nil {
				t.Fatalf("Normalize(%s, %s) expected error", tt.noteType, tt.raw)
			}
			if got := KindOf(err); got != tt.wantKind {
				t.Errorf("error kind = %s, want %s", got, tt.wantKind)
			}
		})
	}
}

func TestNormalize_TypeSwitchIsPermissive(t *testing.T) {
	// Content carried over from the previous type is converted, never
	// rejected. 切换类型时旧变体被转换而不是拒绝。
	entries := Items{ChecklistEntry("done", true), ChecklistEntry("todo", false)}

	flattened, err := NormalizeItems(TypeBullet, entries)
	assert.Nil(t, err)
	for _, item := range flattened {
		assert.Equal(t, KindPlainText, item.Kind())
		assert.False(t, item.IsMarked())
	}

	back, err := NormalizeItems(TypeChecklist, flattened)
	assert.Nil(t, err)
	for _, item := range back {
		assert.Equal(t, KindChecklistEntry, item.Kind())
		// marks never come back once discarded
		assert.False(t, item.IsMarked())
	}
}

func TestNormalize_KeepsTextVerbatim(t *testing.T) {
	items, err := NormalizeItems(TypeBullet, Items{PlainText("  padded  ")})
	assert.Nil(t, err)
	assert.Equal(t, "  padded  ", items[0].Text())
}

func TestValidateTitle(t *testing.T) {
	title, err := ValidateTitle("  groceries  ")
	assert.Nil(t, err)
	assert.Equal(t, "groceries", title)

	_, err = ValidateTitle("   ")
	assert.Equal(t, KindMissingField, KindOf(err))

	// Exactly 200 runes passes, 201 fails.
	// 恰好 200 个字符通过，201 个失败。
	_, err = ValidateTitle(strings.Repeat("x", 200))
	assert.Nil(t, err)
	_, err = ValidateTitle(strings.Repeat("x", 201))
	assert.Equal(t, KindTitleTooLong, KindOf(err))

	// Trimming happens before the length check.
	_, err = ValidateTitle("  " + strings.Repeat("x", 200) + "  ")
	assert.Nil(t, err)
}

func TestItemJSONRoundTrip(t *testing.T) {
	items := Items{PlainText("a"), ChecklistEntry("b", true)}

	encoded, err := items.Encode()
	assert.Nil(t, err)
	assert.Equal(t, `["a",{"text":"b","isMarked":true}]`, encoded)

	decoded, err := DecodeItems(encoded)
	assert.Nil(t, err)
	assert.Equal(t, items, decoded)
}

// genItem generates arbitrary content items including blank ones
// genItem 生成任意内容条目，包含空白条目
func genItem() gopter.Gen {
	texts := gen.OneConstOf("a", "b", "task one", "  ", "", "\t", " x ")
	return gopter.CombineGens(texts, gen.Bool(), gen.Bool()).Map(func(values []interface{}) Item {
		text := values[0].(string)
		if values[1].(bool) {
			return ChecklistEntry(text, values[2].(bool))
		}
		return PlainText(text)
	})
}

func TestProperty_NormalizeIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genItems := gen.SliceOf(genItem())
	genType := gen.OneConstOf(TypeBullet, TypeChecklist)

	properties.Property("normalizing its own output is a no-op", prop.ForAll(
		func(noteType NoteType, items []Item) bool {
			first, err := NormalizeItems(noteType, items)
			if err != nil {
				// only EmptyContent is possible for generated items
				return KindOf(err) == KindEmptyContent
			}
			second, err := NormalizeItems(noteType, first)
			if err != nil {
				return false
			}
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		genType, genItems,
	))

	properties.Property("output order and length follow surviving input", prop.ForAll(
		func(noteType NoteType, items []Item) bool {
			survivors := make([]Item, 0, len(items))
			for _, item := range items {
				if strings.TrimSpace(item.Text()) != "" {
					survivors = append(survivors, item)
				}
			}

			out, err := NormalizeItems(noteType, items)
			if len(survivors) == 0 {
				return err != nil && KindOf(err) == KindEmptyContent
			}
			if err != nil || len(out) != len(survivors) {
				return false
			}
			for i := range out {
				if out[i].Text() != survivors[i].Text() {
					return false
				}
			}
			return true
		},
		genType, genItems,
	))

	properties.TestingRun(t)
}
