package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/text/unicode/norm"
)

// DefaultModel 是未指定模型时使用的聊天模型。
const DefaultModel = "gpt-4o-mini"

// Generator 是 ChatTranslator 依赖的最小聊天模型接口，eino 的 openai.ChatModel 满足该接口。
type Generator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Config 配置 OpenAI 兼容的聊天模型。
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ChatTranslator 通过聊天模型完成翻译。
type ChatTranslator struct {
	model Generator
}

var _ Translator = (*ChatTranslator)(nil)

// NewChatTranslator 使用 eino-ext 的 openai 组件创建翻译器。
func NewChatTranslator(ctx context.Context, cfg Config) (*ChatTranslator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: 缺少 API Key", ErrTranslationUnavailable)
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	chatModelConfig := &openai.ChatModelConfig{
		Model:  modelName,
		APIKey: cfg.APIKey,
	}
	if cfg.BaseURL != "" {
		chatModelConfig.BaseURL = cfg.BaseURL
	}
	chatModel, err := openai.NewChatModel(ctx, chatModelConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: 创建聊天模型失败: %w", ErrTranslationUnavailable, err)
	}
	return NewWithGenerator(chatModel), nil
}

// NewWithGenerator 使用任意 Generator 创建翻译器。
func NewWithGenerator(g Generator) *ChatTranslator {
	return &ChatTranslator{model: g}
}

// Translate 翻译一页文本。空白输入直接返回空字符串，不调用模型；
// 输出经过 NFC 规范化，组合字符统一为预组合形式。
func (t *ChatTranslator) Translate(ctx context.Context, text, src, dst string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	srcName, err := languageName(src)
	if err != nil {
		return "", err
	}
	dstName, err := languageName(dst)
	if err != nil {
		return "", err
	}

	resp, err := t.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(buildSystemPrompt(srcName, dstName)),
		schema.UserMessage(text),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslationUnavailable, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: 模型没有返回内容", ErrTranslationUnavailable)
	}
	out := strings.TrimSpace(norm.NFC.String(resp.Content))
	if out == "" {
		return "", fmt.Errorf("%w: 模型返回了空译文", ErrTranslationUnavailable)
	}
	return out, nil
}

func buildSystemPrompt(src, dst string) string {
	return fmt.Sprintf(`You are a professional document translator.
Translate the user's text from %s to %s.

RULES:
1. Output only the translated text, without explanations or notes.
2. Keep the line structure: one output line per input line, and keep empty lines empty.
3. Leave numbers, URLs, e-mail addresses and code unchanged.`, src, dst)
}
