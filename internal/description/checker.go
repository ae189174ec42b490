// Package description は PR / Issue 本文の品質チェックを行う。
package description

import (
	"strings"
	"unicode/utf16"

	"github.com/douhashi/triage/internal/event"
	"github.com/douhashi/triage/internal/i18n"
)

const (
	// DefaultMinLength は本文の最小長（UTF-16 コード単位）
	DefaultMinLength = 10
	// DefaultAttachmentMarker は GitHub にアップロードされた画像の URL プレフィックス
	DefaultAttachmentMarker = "https://github.com/user-attachments/assets"
)

// Checker は本文の長さとスクリーンショットの有無を確認する
type Checker struct {
	MinLength        int
	AttachmentMarker string
	translator       i18n.Translator
}

// NewChecker はデフォルト設定の Checker を作成する
func NewChecker(translator i18n.Translator) *Checker {
	return &Checker{
		MinLength:        DefaultMinLength,
		AttachmentMarker: DefaultAttachmentMarker,
		translator:       translator,
	}
}

// Check は指摘メッセージを返す。問題がなければ空のスライス。
// 長さの指摘が先、スクリーンショットの指摘が後になる。
func (c *Checker) Check(ev *event.Context) []string {
	messages := []string{}
	body := ev.Body()

	if Length(body) < c.MinLength {
		messages = append(messages, c.translator.GetMessage(i18n.MsgDescriptionTooShort, 0, nil))
	}

	if ev.IsPullRequest() && !strings.Contains(body, c.AttachmentMarker) {
		messages = append(messages, c.translator.GetMessage(i18n.MsgScreenshotRequired, 0, nil))
	}

	return messages
}

// Length は文字列の長さを UTF-16 コード単位で数える
func Length(s string) int {
	return len(utf16.Encode([]rune(s)))
}
