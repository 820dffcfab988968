package pipeline

import "fmt"

// Stage 标识流水线中出错的环节。
type Stage string

const (
	StageRead      Stage = "read"
	StageTranslate Stage = "translate"
	StageCompose   Stage = "compose"
	StageRender    Stage = "render"
)

// Error 记录失败的环节、相关页码（从 1 开始，0 表示与具体页无关）以及底层错误。
type Error struct {
	Stage Stage
	Page  int
	Err   error
}

func (e *Error) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("pipeline: %s 第 %d 页: %v", e.Stage, e.Page, e.Err)
	}
	return fmt.Sprintf("pipeline: %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Message 返回面向用户的简短说明，每个环节各不相同。
func (e *Error) Message() string {
	switch e.Stage {
	case StageRead:
		return "could not read document"
	case StageTranslate:
		if e.Page > 0 {
			return fmt.Sprintf("could not translate page %d", e.Page)
		}
		return "could not translate document"
	case StageCompose:
		return "invalid page layout configuration"
	case StageRender:
		return "could not produce output document"
	default:
		return "could not process document"
	}
}
