package layout

// Compose 将按页翻译好的文本排版为最终文档。
//
// 字体在整份文档中只解析一次；每个源页都从新的一页开始，超长的源页可能扩展为多页，
// 但多个源页绝不会合并到同一页。几何或字体参数不合法时返回 *ConfigurationError，不产生任何部分结果。
func Compose(pages []string, geom PageGeometry, preferred FontSpec, opts ComposeOptions) (*Document, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	budget := opts.CharBudget
	if budget < 0 {
		return nil, configError("charBudget", "字符预算不能为负数，实际为 %d", budget)
	}
	if budget == 0 {
		budget = DefaultCharBudget
	}

	font := preferred
	if opts.Fonts != nil {
		font = opts.Fonts.Resolve(preferred)
	}
	if err := font.Validate(); err != nil {
		return nil, err
	}

	doc := &Document{
		Pages: make([]RenderedPage, 0, len(pages)),
		Font:  font,
		Meta:  opts.Meta,
	}
	for i, page := range pages {
		lines := Wrap(page, budget)
		doc.Pages = append(doc.Pages, paginate(lines, geom, font, i)...)
	}
	return doc, nil
}
