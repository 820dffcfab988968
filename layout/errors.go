package layout

import (
	"fmt"
	"math"
)

// ConfigurationError 表示页面几何或字体参数不合法，是排版引擎唯一会产生的错误。
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("layout: 配置无效 %s: %s", e.Field, e.Reason)
}

func configError(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate 检查几何参数：尺寸为有限非负数，且页宽大于左右边距之和、页高大于上下偏移之和。
func (g PageGeometry) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"width", g.Width},
		{"height", g.Height},
		{"marginLeft", g.MarginLeft},
		{"marginRight", g.MarginRight},
		{"topOffset", g.TopOffset},
		{"bottomOffset", g.BottomOffset},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return configError(f.name, "必须是有限的非负数，实际为 %g", f.value)
		}
	}
	if g.Width <= g.MarginLeft+g.MarginRight {
		return configError("width", "页宽 %g 不大于左右边距之和 %g", g.Width, g.MarginLeft+g.MarginRight)
	}
	if g.Height <= g.TopOffset+g.BottomOffset {
		return configError("height", "页高 %g 不大于上下偏移之和 %g", g.Height, g.TopOffset+g.BottomOffset)
	}
	return nil
}

// Validate 检查字体参数：字号与行高必须为正。
func (f FontSpec) Validate() error {
	if math.IsNaN(f.Size) || math.IsInf(f.Size, 0) || f.Size <= 0 {
		return configError("font.size", "字号必须为正数，实际为 %g", f.Size)
	}
	if math.IsNaN(f.LineHeight) || math.IsInf(f.LineHeight, 0) || f.LineHeight <= 0 {
		return configError("font.lineHeight", "行高必须为正数，实际为 %g", f.LineHeight)
	}
	return nil
}
