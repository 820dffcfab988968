package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

const (
	// DefaultCharBudget 是每行允许的最大字符数（按 Unicode 码点计数）。
	DefaultCharBudget = 80
	tabSize           = 8
)

// Wrap 将一页原始文本拆成按字符预算折行后的行序列。
//
// 每个源行先去除首尾空白：空行输出一个 BlankLine（连续空行逐一保留），
// 非空行按贪心策略在空白处折行；单词超过预算时在字素簇边界处强制拆分，绝不截断内容。
// 空字符串返回 nil，表示该页没有任何内容行，这与全是空行的页面不同。
func Wrap(page string, budget int) []Line {
	if page == "" {
		return nil
	}
	if budget < 1 {
		budget = 1
	}
	var out []Line
	for _, src := range splitLines(page) {
		trimmed := expandTabs(strings.TrimSpace(src))
		if trimmed == "" {
			out = append(out, BlankLine)
			continue
		}
		for _, s := range wrapParagraph(trimmed, budget) {
			out = append(out, TextLine(s))
		}
	}
	return out
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// splitLines 按换行边界拆分，\r\n 视为一个边界；末尾的换行不会产生额外的空行。
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// isBreakSpace 报告 r 是否为可折行的空白；不换行空格（U+00A0、U+2007、U+202F）视为单词的一部分。
func isBreakSpace(r rune) bool {
	switch r {
	case '\u00a0', '\u2007', '\u202f':
		return false
	}
	return unicode.IsSpace(r)
}

// expandTabs 按 8 列制表位展开，列号从去除首尾空白后的行首算起。
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

type token struct {
	text  string
	n     int
	space bool
}

// tokenize 将文本切成交替的空白段与非空白段。
func tokenize(s string) []token {
	var tokens []token
	var builder strings.Builder
	count := 0
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, token{text: builder.String(), n: count, space: lastWasSpace})
		builder.Reset()
		count = 0
	}
	for _, r := range s {
		isSpace := isBreakSpace(r)
		if builder.Len() > 0 && lastWasSpace != isSpace {
			flush()
		}
		lastWasSpace = isSpace
		builder.WriteRune(r)
		count++
	}
	flush()
	return tokens
}

type lineBuilder struct {
	budget int
	buf    strings.Builder
	n      int
	lines  []string
}

func (w *lineBuilder) add(s string, n int) {
	w.buf.WriteString(s)
	w.n += n
}

// emit 输出当前行，行尾空白不计入结果。
func (w *lineBuilder) emit() {
	if w.n == 0 {
		return
	}
	if line := strings.TrimRightFunc(w.buf.String(), isBreakSpace); line != "" {
		w.lines = append(w.lines, line)
	}
	w.buf.Reset()
	w.n = 0
}

// breakWord 处理超长单词：先填满当前行剩余空间，再逐行续排。
// 拆分只发生在字素簇边界，组合字符始终与其基字符位于同一行。
func (w *lineBuilder) breakWord(word string) {
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		cluster := g.Str()
		n := utf8.RuneCountInString(cluster)
		if w.n > 0 && w.n+n > w.budget {
			w.emit()
		}
		w.add(cluster, n)
	}
}

func wrapParagraph(s string, budget int) []string {
	w := &lineBuilder{budget: budget}
	for _, tok := range tokenize(s) {
		if tok.space {
			// 续行行首的空白直接丢弃
			if w.n == 0 {
				continue
			}
			if w.n+tok.n > budget {
				w.emit()
				continue
			}
			w.add(tok.text, tok.n)
			continue
		}
		if w.n+tok.n <= budget {
			w.add(tok.text, tok.n)
			continue
		}
		if tok.n <= budget {
			w.emit()
			w.add(tok.text, tok.n)
			continue
		}
		w.breakWord(tok.text)
	}
	w.emit()
	return w.lines
}
