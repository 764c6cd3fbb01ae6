package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"

	"github.com/ByLCY/conformal/cmdline"
	"github.com/ByLCY/conformal/config"
	"github.com/ByLCY/conformal/lscm"
	"github.com/ByLCY/conformal/pipeline"
	"github.com/ByLCY/conformal/renderer"
	canvasrenderer "github.com/ByLCY/conformal/renderer/canvas"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run 解析命令行并执行一次展开流程，返回进程退出码。
// 进度输出写入 stdout，诊断信息写入 stderr。
func run(args []string, stdout, stderr io.Writer) int {
	logger := newLogger(stderr)
	if cmdline.Verbose(args) {
		logger = logger.Level(zerolog.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	inv, err := cmdline.Parse(args, cmdline.Options{
		EligibleLimit: cfg.EligibleLimit,
		Stdout:        stdout,
		Logger:        logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to parse arguments")
		return 1
	}
	if inv.Verbose {
		logger.Debug().Msg("fixed vertices\n" + spew.Sdump(inv.Constraints.Eligible()))
	}
	if err := inv.Validate(); err != nil {
		logger.Error().Err(err).Msg("failed to parse arguments")
		return 1
	}

	if err := flatten(inv, cfg, stdout, logger); err != nil {
		logger.Error().Err(err).Msg("flattening failed")
		return 1
	}
	return 0
}

// flatten 串联读取、约束、展开与写出，并按需输出预览与报告。
func flatten(inv *cmdline.Invocation, cfg config.Config, stdout io.Writer, logger zerolog.Logger) error {
	solver := lscm.New(lscm.Options{
		Tolerance:     cfg.Solver.Tolerance,
		MaxIterations: cfg.Solver.MaxIterations,
	}, logger)

	fixed := inv.Constraints.Eligible()
	p := pipeline.New(pipeline.NewOBJCollaborators(solver), stdout, logger)
	if err := p.Run(inv.Input, inv.Output, fixed); err != nil {
		return err
	}
	logger.Debug().Stringer("solver", solver.Result()).Msg("conformal map")

	if inv.Preview != "" {
		r := canvasrenderer.NewRenderer(canvasrenderer.Options{
			Size:   cfg.Preview.SizeMM,
			Margin: cfg.Preview.MarginMM,
			Stroke: cfg.Preview.StrokeMM,
			Title:  filepath.Base(inv.Input),
		})
		if err := writePreview(r, p, inv.Preview); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Preview written to %s\n", inv.Preview)
	}

	if inv.Report != "" {
		report := p.Report(inv.Input, inv.Output, fixed, inv.Constraints.Overflow())
		report.Solver = solver.Result()
		if err := pipeline.WriteReportJSON(report, inv.Report); err != nil {
			return fmt.Errorf("write report %s: %w", inv.Report, err)
		}
	}
	return nil
}

func writePreview(r renderer.Renderer, p *pipeline.Pipeline, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preview directory: %w", err)
		}
	}
	pdfBytes, err := r.Render(p.Mesh())
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("write preview %s: %w", path, err)
	}
	return nil
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:          w,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}).Level(zerolog.InfoLevel)
}
