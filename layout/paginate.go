package layout

// pageCollector 按顺序收集页面，并维护当前页的纵向游标。
type pageCollector struct {
	geom    PageGeometry
	font    FontSpec
	source  int
	pages   []RenderedPage
	current *RenderedPage
	cursorY float64
}

func newPageCollector(geom PageGeometry, font FontSpec, source int) *pageCollector {
	pc := &pageCollector{geom: geom, font: font, source: source}
	pc.newPage()
	return pc
}

// newPage 关闭当前页（如有）并开启新页，游标回到内容区域顶部。
func (pc *pageCollector) newPage() {
	pc.closePage()
	pc.current = &RenderedPage{
		Width:    pc.geom.Width,
		Height:   pc.geom.Height,
		Source:   pc.source,
		Commands: []DrawCommand{},
	}
	pc.cursorY = pc.geom.Top()
}

func (pc *pageCollector) closePage() {
	if pc.current == nil {
		return
	}
	pc.pages = append(pc.pages, *pc.current)
	pc.current = nil
}

// ensureSpace 在游标已越过底部偏移时强制分页。
func (pc *pageCollector) ensureSpace() {
	if pc.cursorY < pc.geom.BottomOffset {
		pc.newPage()
	}
}

func (pc *pageCollector) place(line Line) {
	pc.ensureSpace()
	if !line.Blank {
		pc.current.Commands = append(pc.current.Commands, DrawCommand{
			Text: line.Text,
			X:    pc.geom.MarginLeft,
			Y:    pc.cursorY,
			Font: pc.font.Name,
			Size: pc.font.Size,
		})
	}
	pc.cursorY -= pc.font.LineHeight
}

// Paginate 将行序列自上而下放入页面，纵向空间耗尽时强制分页。
// 空行只消耗一行高度不产生绘制命令；输入为空时仍返回一张空白页以保持页码对应。
// 调用方负责事先校验 geom 与 font。
func Paginate(lines []Line, geom PageGeometry, font FontSpec) []RenderedPage {
	return paginate(lines, geom, font, 0)
}

func paginate(lines []Line, geom PageGeometry, font FontSpec, source int) []RenderedPage {
	pc := newPageCollector(geom, font, source)
	for _, line := range lines {
		pc.place(line)
	}
	pc.closePage()
	return pc.pages
}
