// Package report は実行結果を標準出力、GitHub Actions の出力ファイル、
// コメント本文に書き出す。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/douhashi/triage/internal/i18n"
	"github.com/google/uuid"
)

const delimiterPrefix = "ghadelimiter_"

// WriteJSON は v を1行の JSON として書き出す
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

// WriteActionsOutput は GITHUB_OUTPUT 形式のファイルに key=value を追記する。
// 値は複数行になりうるためヒアドキュメント形式で書く。
// path が空の場合は何もしない。
func WriteActionsOutput(path, key, value string) error {
	if path == "" {
		return nil
	}
	if key == "" {
		return fmt.Errorf("output key is required")
	}

	delimiter := delimiterPrefix + uuid.NewString()
	if strings.Contains(key, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("output %q contains the delimiter", key)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter); err != nil {
		return fmt.Errorf("failed to write output %q: %w", key, err)
	}
	return nil
}

// CommentBody は指摘メッセージを Markdown のリストにまとめる。
// メッセージがなければ空文字列を返す。
func CommentBody(translator i18n.Translator, messages []string) string {
	if len(messages) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(translator.GetMessage(i18n.MsgReportHeader, 0, nil))
	b.WriteString("\n\n")

	// 同じ指摘はまとめる
	seen := make(map[string]struct{}, len(messages))
	for _, msg := range messages {
		if _, ok := seen[msg]; ok {
			continue
		}
		seen[msg] = struct{}{}
		b.WriteString("- ")
		b.WriteString(msg)
		b.WriteString("\n")
	}
	return b.String()
}
