// Package binding 展开输出文件名等模板中的 ${...} 占位符。
package binding

import (
	"fmt"
	"regexp"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars 是模板变量，值可以是嵌套的 map，通过 "a.b" 访问。
type Vars map[string]any

// Interpolate 将 ${key} 或 ${a.b} 替换为 vars 中的值；${key:-default} 在值缺失或为空时使用默认值。
// 既不存在也没有默认值的占位符原样保留。
func Interpolate(text string, vars Vars) string {
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-1])
		path, fallback, hasDefault := strings.Cut(expr, ":-")
		path = strings.TrimSpace(path)
		if path == "" {
			return match
		}
		if val, ok := resolvePath(vars, path); ok {
			if s := fmt.Sprint(val); s != "" {
				return s
			}
		}
		if hasDefault {
			return fallback
		}
		return match
	})
}

func resolvePath(vars Vars, path string) (any, bool) {
	var current any = map[string]any(vars)
	for _, segment := range strings.Split(path, ".") {
		var ok bool
		current, ok = descend(current, segment)
		if !ok {
			return nil, false
		}
	}
	return current, current != nil
}

func descend(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case Vars:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}
