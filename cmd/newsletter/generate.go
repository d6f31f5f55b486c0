package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	newsletter "github.com/Hiba550/newsletter"
	"github.com/Hiba550/newsletter/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoWorkbook   = errors.New("no workbook specified, use --excel")
	ErrInvalidImage = errors.New("invalid --image value, expected key=path")
	ErrInvalidTime  = errors.New("invalid --timeout value")
)

// run resolves configuration, builds the service, and generates the
// newsletter. Flags take precedence over config file values.
func run(flags *generateFlags, out io.Writer) error {
	if flags.version {
		fmt.Fprintf(out, "newsletter %s\n", Version)
		return nil
	}

	cfg, err := resolveConfig(flags.config)
	if err != nil {
		return err
	}

	input, opts, err := buildInput(flags, cfg)
	if err != nil {
		return err
	}

	svc := newsletter.New(opts...)
	defer func() { _ = svc.Close() }()

	if flags.verbose {
		fmt.Fprintf(out, "Loading %s\n", input.WorkbookPath)
	}

	result, err := svc.Generate(context.Background(), input)
	if err != nil {
		return err
	}

	if !flags.quiet {
		fmt.Fprintf(out, "Created %s\n", result.HTMLPath)
		if result.PDFPath != "" {
			fmt.Fprintf(out, "Created %s\n", result.PDFPath)
		}
	}
	return nil
}

// resolveConfig loads the named config, or defaults when none is given.
func resolveConfig(nameOrPath string) (*config.Config, error) {
	if nameOrPath == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfig(nameOrPath)
}

// buildInput merges flags over config into the service input and options.
func buildInput(flags *generateFlags, cfg *config.Config) (newsletter.Input, []newsletter.Option, error) {
	workbook := flags.workbook
	if workbook == "" {
		workbook = cfg.Workbook
	}
	if workbook == "" {
		return newsletter.Input{}, nil, ErrNoWorkbook
	}

	session := flags.session
	if session == "" {
		session = cfg.Session
	}

	images := make(map[string]string, len(cfg.Images)+len(flags.images))
	for key, path := range cfg.Images {
		images[key] = path
	}
	for _, pair := range flags.images {
		key, path, ok := strings.Cut(pair, "=")
		if !ok || key == "" || path == "" {
			return newsletter.Input{}, nil, fmt.Errorf("%w: %q", ErrInvalidImage, pair)
		}
		images[key] = path
	}

	var opts []newsletter.Option
	if root := firstNonEmpty(flags.output, cfg.Output.Root); root != "" {
		opts = append(opts, newsletter.WithOutputRoot(root))
	}
	if assets := firstNonEmpty(flags.assets, cfg.Assets.BasePath); assets != "" {
		opts = append(opts, newsletter.WithAssetDir(assets))
	}
	if flags.rawImages {
		opts = append(opts, newsletter.WithRawImages())
	}
	if timeout, err := resolveTimeout(flags.timeout, cfg.PDF.TimeoutSeconds); err != nil {
		return newsletter.Input{}, nil, err
	} else if timeout > 0 {
		opts = append(opts, newsletter.WithTimeout(timeout))
	}

	return newsletter.Input{
		WorkbookPath: workbook,
		ImagePaths:   images,
		SessionID:    session,
		PrintPDF:     flags.pdf || cfg.PDF.Enabled,
	}, opts, nil
}

// resolveTimeout picks the flag duration over the config seconds.
func resolveTimeout(flagValue string, cfgSeconds int) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, flagValue)
		}
		return d, nil
	}
	if cfgSeconds > 0 {
		return time.Duration(cfgSeconds) * time.Second, nil
	}
	return 0, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
