// Binary ejsql renders SQL template files against a YAML or JSON data
// file and prints the result.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Konsultn-Engineering/ejsql/engine"
)

type options struct {
	templates  []string
	dataPath   string
	configPath string
	dialect    string
	cache      bool
	debug      bool
	logLevel   string
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "ejsql:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options

	flags := pflag.NewFlagSet("ejsql", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringArrayVarP(&opts.templates, "template", "t", nil, "template file to render (repeatable)")
	flags.StringVarP(&opts.dataPath, "data", "d", "", "YAML or JSON file holding the data mapping")
	flags.StringVar(&opts.configPath, "config", "", "YAML engine configuration file")
	flags.StringVar(&opts.dialect, "dialect", "", "SQL dialect: postgres, mysql or tidb (overrides config)")
	flags.BoolVar(&opts.cache, "cache", false, "cache compiled templates keyed by file path")
	flags.BoolVar(&opts.debug, "debug", false, "include marker context in render errors")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	if err := flags.Parse(args); err != nil {
		return err
	}
	opts.templates = append(opts.templates, flags.Args()...)
	if len(opts.templates) == 0 {
		return fmt.Errorf("no template given (use --template FILE)")
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dialect != "" {
		cfg.Dialect = opts.dialect
	}

	en, err := engine.NewFromConfig(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}

	data, err := loadData(opts.dataPath)
	if err != nil {
		return err
	}

	for _, path := range opts.templates {
		text, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}

		rc := engine.RenderConfig{Cache: opts.cache, Filename: path}
		out, err := en.Render(string(text), data, rc, engine.EvalConfig{Debug: opts.debug})
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintln(stdout, out)
	}

	logger.Debug("render finished",
		slog.Int("templates", len(opts.templates)),
		slog.Int("cached", en.Cache().Len()))
	return nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func loadConfig(path string) (engine.Config, error) {
	if path == "" {
		return engine.Config{}, nil
	}
	f, err := os.Open(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return engine.Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	return engine.LoadConfig(f)
}

// loadData reads the data mapping. JSON documents are valid YAML, so one
// decoder serves both.
func loadData(path string) (map[string]any, error) {
	data := map[string]any{}
	if path == "" {
		return data, nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("decoding data %s: %w", path, err)
	}
	return data, nil
}
