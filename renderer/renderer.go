package renderer

import (
	"errors"

	"github.com/ByLCY/transpage/layout"
)

// ErrEncoding 表示排版结果无法编码为目标文档格式。
var ErrEncoding = errors.New("renderer: 编码失败")

// Renderer 将排版结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据；失败时返回包裹 ErrEncoding 的错误。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}
