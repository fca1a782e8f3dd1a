package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"retroexport/internal/browser"
	"retroexport/internal/config"
	"retroexport/internal/export"
	"retroexport/internal/output"
	"retroexport/internal/page"
)

var version = "dev"

var (
	outputFormat string
	outputFile   string
	configFile   string
	inputFile    string
	timeout      time.Duration
	showUI       bool
	proxyURL     string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "retroexport [URL]",
		Short:   "Export a retrospective board page to txt or csv",
		Version: version,
		Long: `retroexport opens a rendered retrospective board in a headless
browser, collects the columns and their voted messages, and writes the
board to a flat file named after its title.

Messages below the configured vote threshold are left out of the export.`,
		Example: `  # Export a board as text, written to <BoardTitle>.txt
  retroexport https://retro.example.com/board/sprint-12

  # Export as CSV to an explicit path
  retroexport -f csv -o sprint12.csv https://retro.example.com/board/sprint-12

  # Use a custom selector set and print to stdout
  retroexport -c selectors.yaml -o - https://retro.example.com/board/sprint-12

  # Export from a saved page snapshot instead of a live URL
  retroexport --input board.html -f csv`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && inputFile == "" {
				cmd.Help()
				os.Exit(0)
			}
			if inputFile != "" {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "txt", "Output format (txt, csv)")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path ('-' for stdout; default: named after the board title)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Selector config file (YAML)")
	rootCmd.Flags().StringVar(&inputFile, "input", "", "Read a saved HTML snapshot instead of fetching a URL")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Page fetch timeout")
	rootCmd.Flags().BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	rootCmd.Flags().StringVarP(&proxyURL, "proxy", "p", os.Getenv("RETRO_PROXY"), "Proxy URL (e.g. http://127.0.0.1:7890), defaults to RETRO_PROXY env var")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	// If an output file is specified but the format is not, infer the
	// format from the file extension.
	if outputFile != "" && outputFormat == "txt" {
		if inferred := inferFormatFromExtension(outputFile); inferred != "" {
			outputFormat = inferred
		}
	}

	// Resolve the serializer before any browser work so a bad format
	// fails immediately instead of being coerced to a default.
	serializer, ok := export.Get(outputFormat)
	if !ok {
		return fmt.Errorf("%w: %s", export.ErrUnsupportedFormat, outputFormat)
	}

	logger := newLogger(verbose)
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var p page.Page
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		hp, err := page.NewHTMLPage(f)
		f.Close()
		if err != nil {
			return err
		}
		p = hp
	} else {
		b, err := browser.New(browser.Config{
			ProxyURL: proxyURL,
			Headless: !showUI,
		})
		if err != nil {
			return fmt.Errorf("failed to create browser: %w", err)
		}
		defer b.Close()

		rp, err := page.OpenRod(b, normalizeURL(args[0]), timeout)
		if err != nil {
			return fmt.Errorf("failed to fetch page: %w", err)
		}
		p = rp
	}
	defer p.Close()

	content, title, err := export.Export(cmd.Context(), p, cfg, outputFormat, logger)
	if err != nil {
		return err
	}

	if outputFile == "-" {
		fmt.Print(content)
		return nil
	}

	path := outputFile
	if path == "" {
		path = output.Filename(title, serializer.Name())
	}
	if err := output.Write(path, content); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Output written to: %s\n", path)

	return nil
}

// newLogger builds a console logger on stderr; verbose enables debug.
func newLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// inferFormatFromExtension infers output format from file extension
func inferFormatFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return "txt"
	case ".csv":
		return "csv"
	default:
		return ""
	}
}

// normalizeURL normalizes URL, adds http:// if no protocol prefix
func normalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return rawURL
	}
	if !strings.HasPrefix(strings.ToLower(rawURL), "http://") && !strings.HasPrefix(strings.ToLower(rawURL), "https://") {
		return "http://" + rawURL
	}
	return rawURL
}
