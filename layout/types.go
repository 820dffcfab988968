package layout

// 该文件定义排版引擎的输入几何、字体描述与输出结果，供排版、渲染与调试 JSON 共用。
// 所有长度单位均为 pt（1/72 英寸），坐标原点位于页面左下角，y 轴向上。

// PageGeometry 描述目标页面尺寸以及文本可用区域。
type PageGeometry struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginLeft   float64 `json:"marginLeft"`
	MarginRight  float64 `json:"marginRight"`
	TopOffset    float64 `json:"topOffset"`
	BottomOffset float64 `json:"bottomOffset"`
}

// Top 返回首行基线所在的 y 坐标。
func (g PageGeometry) Top() float64 { return g.Height - g.TopOffset }

// FontSpec 描述一次排版使用的字体。
type FontSpec struct {
	Name       string  `json:"name"`
	Size       float64 `json:"size"`
	LineHeight float64 `json:"lineHeight"`
}

// NewFontSpec 以字号加固定行距的方式推导行高。
func NewFontSpec(name string, size, leading float64) FontSpec {
	return FontSpec{Name: name, Size: size, LineHeight: size + leading}
}

// Line 是折行后的一行：要么是可绘制文本，要么是保留段落间距的空行标记。
type Line struct {
	Text  string `json:"text"`
	Blank bool   `json:"blank,omitempty"`
}

// BlankLine 占用一行的垂直空间但不绘制任何内容。
var BlankLine = Line{Blank: true}

// TextLine 构造一条可绘制的文本行。
func TextLine(s string) Line { return Line{Text: s} }

// DrawCommand 表示在页面坐标 (X, Y) 处以指定字体绘制一行文本，Y 为基线位置。
type DrawCommand struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Font string  `json:"font"`
	Size float64 `json:"size"`
}

// RenderedPage 是一张物理输出页面。相邻两个 RenderedPage 之间即为显式分页。
type RenderedPage struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Source   int           `json:"source"` // 来源页序号（从 0 开始）
	Commands []DrawCommand `json:"commands"`
}

// Document 是交给渲染器的完整排版结果。
type Document struct {
	Pages []RenderedPage `json:"pages"`
	Font  FontSpec       `json:"font"`
	Meta  DocumentMeta   `json:"meta"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
