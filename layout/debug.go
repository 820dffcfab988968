package layout

import (
	"encoding/json"
	"os"
)

// debugDump 在排版结果之外附带每个源页展开成的输出页数，便于核对页码对应关系。
type debugDump struct {
	OutputPages   int       `json:"outputPages"`
	PagesBySource []int     `json:"pagesBySource"`
	Document      *Document `json:"document"`
}

// PagesBySource 返回每个源页（按 Source 序号）产生的输出页数。
func (d *Document) PagesBySource() []int {
	var counts []int
	for _, p := range d.Pages {
		for len(counts) <= p.Source {
			counts = append(counts, 0)
		}
		counts[p.Source]++
	}
	return counts
}

// WriteDebugJSON 将排版结果连同分页汇总输出为 JSON。
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	data, err := json.MarshalIndent(debugDump{
		OutputPages:   len(doc.Pages),
		PagesBySource: doc.PagesBySource(),
		Document:      doc,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
