package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ByLCY/transpage/extract"
	"github.com/ByLCY/transpage/fonts"
	"github.com/ByLCY/transpage/layout"
	"github.com/ByLCY/transpage/pipeline"
	"github.com/ByLCY/transpage/profile"
	canvasrenderer "github.com/ByLCY/transpage/renderer/canvas"
	"github.com/ByLCY/transpage/translate"
)

type options struct {
	input       string
	output      string
	profilePath string
	debugPath   string
	from        string
	to          string
	model       string
	baseURL     string
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "in", "", "待翻译的 PDF 文件路径")
	flag.StringVar(&opts.output, "out", "", "PDF 输出路径（默认按配置中的 output 模板生成在输入文件旁）")
	flag.StringVar(&opts.profilePath, "profile", "", "排版配置文件路径（缺省使用内置 A4 印地语配置）")
	flag.StringVar(&opts.debugPath, "debug", "", "排版调试 JSON 输出路径")
	flag.StringVar(&opts.from, "from", "", "覆盖配置中的源语言")
	flag.StringVar(&opts.to, "to", "", "覆盖配置中的目标语言")
	flag.StringVar(&opts.model, "model", translate.DefaultModel, "翻译使用的聊天模型")
	flag.StringVar(&opts.baseURL, "base-url", os.Getenv("OPENAI_BASE_URL"), "OpenAI 兼容接口地址")
	logLevel := flag.String("log-level", "info", "日志级别：debug/info/warn/error")
	flag.Parse()

	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("无效的日志级别 %q: %v", *logLevel, err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if opts.input == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outPath, err := run(ctx, opts, logger)
	if err != nil {
		var perr *pipeline.Error
		if errors.As(err, &perr) {
			logger.WithError(perr.Err).WithField("stage", perr.Stage).Fatal(perr.Message())
		}
		logger.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", outPath)
}

// run 串联配置加载、翻译、排版与渲染，返回实际写入的输出路径。
func run(ctx context.Context, opts options, logger *logrus.Logger) (string, error) {
	prof, err := loadProfile(opts.profilePath)
	if err != nil {
		return "", err
	}
	if opts.from != "" {
		prof.From = opts.from
	}
	if opts.to != "" {
		prof.To = opts.to
	}
	if err := prof.Validate(); err != nil {
		return "", fmt.Errorf("配置无效: %w", err)
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		return "", fmt.Errorf("无法读取输入文件 %s: %w", opts.input, err)
	}

	fontOpts := prof.FontOptions()
	fontOpts.Logger = logger
	catalog := fonts.NewCatalog(fontOpts)

	tr, err := translate.NewChatTranslator(ctx, translate.Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: opts.baseURL,
		Model:   opts.model,
	})
	if err != nil {
		return "", fmt.Errorf("初始化翻译器失败（请设置 OPENAI_API_KEY）: %w", err)
	}

	p := &pipeline.Pipeline{
		Reader:     extract.NewPDFReader(),
		Translator: tr,
		Renderer:   canvasrenderer.NewRenderer(catalog),
		Fonts:      catalog,
		Geometry:   prof.Geometry,
		Font:       prof.Font,
		CharBudget: prof.CharBudget,
		Meta:       prof.Meta,
		From:       prof.From,
		To:         prof.To,
		Logger:     logger.WithField("input", filepath.Base(opts.input)),
	}
	result, err := p.Convert(ctx, data)
	if err != nil {
		return "", err
	}

	if opts.debugPath != "" {
		if err := writeDebug(result.Document, opts.debugPath); err != nil {
			return "", err
		}
	}

	outPath := opts.output
	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(opts.input), prof.OutputName(opts.input))
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outPath, result.PDF, 0o644); err != nil {
		return "", fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return outPath, nil
}

func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开配置文件 %s: %w", path, err)
	}
	defer file.Close()

	prof, err := profile.Load(file, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("加载配置文件 %s 失败: %w", path, err)
	}
	return prof, nil
}

func writeDebug(doc *layout.Document, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(doc, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
