package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/editorconv/htmldocx/internal/config"
	"github.com/editorconv/htmldocx/internal/convert"
	"github.com/editorconv/htmldocx/internal/imagestore"
	"github.com/editorconv/htmldocx/internal/markdown"
	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("htmldocx", pflag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: htmldocx [flags] <input.html|input.md>")
		flags.PrintDefaults()
	}

	var (
		output      = flags.StringP("output", "o", "", "output .docx path (default: input name with .docx)")
		title       = flags.String("title", "", "document title (default: input name)")
		filesDir    = flags.String("files-dir", "", "directory for materialized images (default: $HTMLDOCX_FILES_DIR or \"files\")")
		styleConfig = flags.String("style-config", "", "YAML file extending the color palette and code style")
		verbose     = flags.BoolP("verbose", "v", false, "debug logging")
		version     = flags.Bool("version", false, "print version and exit")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *version {
		fmt.Println("htmldocx", Version)
		return nil
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("expected exactly one input file")
	}

	// GOMAXPROCS from cgroup limits; errors only mean the env override was
	// invalid and the runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	input := flags.Arg(0)
	src, err := os.ReadFile(input) // #nosec G304 -- input path is operator-provided
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	htmlSrc := string(src)
	if ext := strings.ToLower(filepath.Ext(input)); markdown.IsMarkdownExt(ext) {
		htmlSrc, err = markdown.ToHTML(src)
		if err != nil {
			return err
		}
		log.Debug("rendered markdown input", "bytes", len(htmlSrc))
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	outPath := *output
	if outPath == "" {
		outPath = stem + ".docx"
	}
	docTitle := *title
	if docTitle == "" {
		docTitle = stem
	}
	imagesDir := *filesDir
	if imagesDir == "" {
		imagesDir = cfg.FilesDir
	}

	var styles *convert.StyleConfig
	if *styleConfig != "" {
		styles, err = convert.LoadStyles(*styleConfig)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	images := imagestore.NewWithOptions(imagesDir, imagestore.Options{
		Timeout:   cfg.FetchTimeout,
		TLSVerify: cfg.TLSVerify,
		MaxBytes:  cfg.MaxImageBytes,
	})

	log.Debug("converting", "input", input, "output", outPath, "files_dir", imagesDir)
	buf, err := convert.Convert(ctx, htmlSrc, convert.Options{
		Title:  docTitle,
		Styles: styles,
		Images: images,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, buf, 0o600); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info("created document", "path", outPath, "bytes", len(buf))
	return nil
}
