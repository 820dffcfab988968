package fonts

import (
	"unicode"

	"golang.org/x/text/language"
)

// ISO 15924 代码到 unicode.Scripts 表名的映射。
var scriptTables = map[string]string{
	"Latn": "Latin",
	"Cyrl": "Cyrillic",
	"Grek": "Greek",
	"Armn": "Armenian",
	"Geor": "Georgian",
	"Hebr": "Hebrew",
	"Arab": "Arabic",
	"Deva": "Devanagari",
	"Beng": "Bengali",
	"Guru": "Gurmukhi",
	"Gujr": "Gujarati",
	"Orya": "Oriya",
	"Taml": "Tamil",
	"Telu": "Telugu",
	"Knda": "Kannada",
	"Mlym": "Malayalam",
	"Sinh": "Sinhala",
	"Thai": "Thai",
	"Laoo": "Lao",
	"Khmr": "Khmer",
	"Mymr": "Myanmar",
	"Tibt": "Tibetan",
	"Ethi": "Ethiopic",
	"Hans": "Han",
	"Hant": "Han",
	"Jpan": "Hiragana",
	"Kore": "Hangul",
	"Hang": "Hangul",
}

// ScriptFor 返回语言标签对应书写系统的 Unicode 区段表，无法推断时返回 nil。
// 例如 "hi" → unicode.Devanagari。
func ScriptFor(tag language.Tag) *unicode.RangeTable {
	script, conf := tag.Script()
	if conf == language.No {
		return nil
	}
	name, ok := scriptTables[script.String()]
	if !ok {
		return nil
	}
	return unicode.Scripts[name]
}

// 区段表开头是罕用字符的书写系统，改用常用字探测：
// 汉字表从 U+3005 与扩展 A 区开始，谚文表从 U+1100 字母开始。
var representativeRunes = map[*unicode.RangeTable][]rune{
	unicode.Han:    []rune("的一是不了人我在有他中大上年出也地和小日月水山天"),
	unicode.Hangul: []rune("가나다라마바사아자차카타파하한국어는을이의에서고"),
}

// sampleRunes 取 max 个探测字符，用于检测字体的字形覆盖。
// 有代表字表的书写系统直接使用代表字，其余按码点顺序取前 max 个字母。
func sampleRunes(table *unicode.RangeTable, max int) []rune {
	if rep, ok := representativeRunes[table]; ok {
		if len(rep) > max {
			rep = rep[:max]
		}
		return append([]rune(nil), rep...)
	}
	var out []rune
	add := func(lo, hi, stride uint32) {
		for r := lo; r <= hi && len(out) < max; r += stride {
			if unicode.IsLetter(rune(r)) {
				out = append(out, rune(r))
			}
		}
	}
	for _, r := range table.R16 {
		add(uint32(r.Lo), uint32(r.Hi), uint32(r.Stride))
	}
	for _, r := range table.R32 {
		add(r.Lo, r.Hi, r.Stride)
	}
	return out
}
