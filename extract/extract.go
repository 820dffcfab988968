// Package extract 从源文档中按页提取纯文本。
package extract

import (
	"context"
	"errors"
)

// ErrUnreadableDocument 表示源文档无法解析或不是受支持的格式。
var ErrUnreadableDocument = errors.New("extract: 文档无法读取")

// Reader 将文档字节拆分为按页排列的文本。无可提取文本的页返回空字符串，
// 以保证页数与源文档一致。
type Reader interface {
	ExtractPages(ctx context.Context, data []byte) ([]string, error)
}
