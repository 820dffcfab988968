// Package translate 将每页文本从源语言翻译为目标语言。
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrTranslationUnavailable 表示翻译服务不可用或返回了无法使用的结果。
var ErrTranslationUnavailable = errors.New("translate: 翻译不可用")

// Translator 翻译一段文本。src、dst 为 BCP 47 语言标签，如 "en"、"hi"。
type Translator interface {
	Translate(ctx context.Context, text, src, dst string) (string, error)
}

// languageName 返回语言标签的英文名称，用于拼接提示词；无法识别时原样返回标签。
func languageName(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("%w: 无效的语言标签 %q: %w", ErrTranslationUnavailable, code, err)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name, nil
	}
	return tag.String(), nil
}
