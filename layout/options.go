package layout

// ComposeOptions 配置排版阶段所需的依赖与参数。
type ComposeOptions struct {
	Fonts      FontResolver
	CharBudget int // 每行字符预算，0 表示使用 DefaultCharBudget
	Meta       DocumentMeta
}

// FontResolver 负责把期望的字体解析为实际可用的字体；不可用时应静默回退，绝不失败。
type FontResolver interface {
	Resolve(preferred FontSpec) FontSpec
}
