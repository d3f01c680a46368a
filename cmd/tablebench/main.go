// Command tablebench measures and compares how long different readers take to
// load the same spreadsheet or CSV file into an in-memory table.
//
// Usage:
//
//	tablebench -input data.xlsx                  # compare excelize vs gota
//	tablebench -input data.csv -iterations 10    # more measured passes
//	tablebench -config tablebench.json           # settings from a file
//	tablebench -input data.csv -targets stdcsv   # only one target
//
// The run completes with exit code 0 even when individual targets fail every
// iteration; only an invalid configuration or a missing input file exits
// non-zero.
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"

	"github.com/baiguangmei/tablebench/pkg/bench"
	"github.com/baiguangmei/tablebench/pkg/config"
	"github.com/baiguangmei/tablebench/pkg/report"
	"github.com/baiguangmei/tablebench/pkg/targets"
)

//go:embed README.md
var readmeMarkdown string

var bannerLines = []string{
	`   __        __    __     __                     __  `,
	`  / /_____ _/ /_  / /__  / /_  ___  ____  _____/ /_  `,
	` / __/ __ '/ __ \/ / _ \/ __ \/ _ \/ __ \/ ___/ __ \ `,
	`/ /_/ /_/ / /_/ / /  __/ /_/ /  __/ / / / /__/ / / / `,
	`\__/\__,_/_.___/_/\___/_.___/\___/_/ /_/\___/_/ /_/  `,
}

// printBanner fades the banner from green at the top line to blue at the
// bottom one.
func printBanner() {
	top, _ := colorful.Hex("#36D399")
	bottom, _ := colorful.Hex("#3B82F6")

	var b strings.Builder
	for i, line := range bannerLines {
		t := float64(i) / float64(len(bannerLines)-1)
		c := top.BlendLuv(bottom, t)
		style := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Hex()))
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	fmt.Println(b.String())
}

var (
	// Styles for usage output
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#36D399"))

	flagStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	exampleStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6C7086"))
)

func printUsage() {
	fmt.Printf("%s %s\n\n",
		titleStyle.Render("tablebench"),
		descStyle.Render("— compare readers loading one file into an in-memory table"))

	fmt.Println(titleStyle.Render("Options:"))
	flag.VisitAll(func(f *flag.Flag) {
		line := "  " + flagStyle.Render("-"+f.Name)
		// Hide zero-ish defaults.
		if def := f.DefValue; def != "" && def != "false" && def != "0" {
			line += " " + descStyle.Render("(default "+def+")")
		}
		fmt.Println(line)
		fmt.Printf("      %s\n", f.Usage)
	})
	fmt.Println()

	fmt.Println(titleStyle.Render("Examples:"))
	fmt.Println(exampleStyle.Render("  tablebench -input tests/testdatalarge.xlsx"))
	fmt.Println(exampleStyle.Render("  tablebench -input data.csv -iterations 10 -details"))
	fmt.Println()

	fmt.Println(descStyle.Render("Run 'tablebench -help' for full documentation."))
}

func printFullDocs() {
	// Wrap to the terminal, but keep prose readable on very wide ones.
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = min(w, 100)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if out, rerr := renderer.Render(readmeMarkdown); rerr == nil {
			fmt.Print(out)
			return
		}
	}
	// Raw markdown beats no documentation.
	fmt.Println(readmeMarkdown)
}

func main() {
	configPath := flag.String("config", "", "path to tablebench.json config file")
	input := flag.String("input", "", "path to the spreadsheet or CSV file to benchmark")
	iterations := flag.Int("iterations", config.DefaultIterations, "number of measured passes over every target")
	warmup := flag.Int("warmup", 0, "untimed passes over every target before measuring")
	targetNames := flag.String("targets", "", "comma-separated target names to run (empty = all)")
	details := flag.Bool("details", false, "include the per-iteration detail block in the report")
	jsonLogs := flag.Bool("json", false, "output logs in JSON format")
	showHelp := flag.Bool("help", false, "show full documentation")
	flag.Usage = printUsage
	flag.Parse()

	// Show full docs with -help
	if *showHelp {
		printFullDocs()
		os.Exit(0)
	}

	// Set up logger
	var handler slog.Handler
	if *jsonLogs {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg := config.Default()
	if *configPath != "" {
		fileCfg, err := config.ReadConfigFile(*configPath)
		if err != nil {
			logger.Error("failed to read config", "error", err)
			os.Exit(1)
		}
		cfg = mergeFileConfig(cfg, *fileCfg)
		logger.Info("loaded config file", "path", *configPath)
	}

	// A .env next to the data directory is the lowest-priority input source.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	applyFlags(&cfg, flag.CommandLine, *input, *iterations, *warmup, *targetNames, *details)
	resolveInput(&cfg)

	if cfg.Input == "" {
		printBanner()
		printUsage()
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		os.Exit(1)
	}

	// Fail fast on a bad input path instead of once per target per iteration.
	if err := bench.CheckInput(cfg.Input); err != nil {
		logger.Error("input check failed", "error", err)
		os.Exit(1)
	}

	reg, err := targets.ForInput(cfg.Input)
	if err != nil {
		logger.Error("failed to build target set", "error", err)
		os.Exit(1)
	}
	if len(cfg.Targets) > 0 {
		reg, err = reg.Filter(cfg.Targets)
		if err != nil {
			logger.Error("failed to filter targets", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting benchmark",
		"input", cfg.Input,
		"targets", reg.Names(),
		"iterations", cfg.Iterations,
		"warmup", cfg.Warmup)

	runner := bench.NewRunner(logger)
	log, err := runner.Run(ctx, reg, bench.RunConfig{
		Iterations: cfg.Iterations,
		Warmup:     cfg.Warmup,
	})
	if err != nil {
		var invalid *bench.InvalidConfigError
		if errors.As(err, &invalid) {
			logger.Error("invalid run configuration", "error", err)
		} else {
			logger.Error("benchmark interrupted", "error", err, "measurements", len(log))
		}
		os.Exit(1)
	}

	host, err := report.CollectHostInfo()
	if err != nil {
		logger.Warn("failed to collect host info", "error", err)
	}

	out := report.Render(report.Report{
		Input:      cfg.Input,
		Iterations: cfg.Iterations,
		Host:       host,
		Summaries:  report.Summarize(log, reg.Names()),
		Log:        log,
		Details:    cfg.Details,
	})
	fmt.Print(out)
}

// mergeFileConfig overlays file values onto the defaults. Zero values in the
// file leave the default in place.
func mergeFileConfig(base, file config.Config) config.Config {
	if file.Input != "" {
		base.Input = file.Input
	}
	if file.Iterations != 0 {
		base.Iterations = file.Iterations
	}
	if file.Warmup != 0 {
		base.Warmup = file.Warmup
	}
	if len(file.Targets) > 0 {
		base.Targets = file.Targets
	}
	if file.Details {
		base.Details = true
	}
	return base
}

// applyFlags overlays command line values onto cfg. Only flags the user
// actually set are applied, so a flag's default never clobbers a config file
// value; an explicitly-set flag wins even when it matches the default.
func applyFlags(cfg *config.Config, fs *flag.FlagSet, input string, iterations, warmup int, targetNames string, details bool) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["input"] {
		cfg.Input = input
	}
	if set["iterations"] {
		cfg.Iterations = iterations
	}
	if set["warmup"] {
		cfg.Warmup = warmup
	}
	if set["targets"] {
		cfg.Targets = nil
		for _, name := range strings.Split(targetNames, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Targets = append(cfg.Targets, name)
			}
		}
	}
	if set["details"] {
		cfg.Details = details
	}
}

// resolveInput falls back to the environment when neither a flag nor the
// config file named an input. Lowest priority in the chain.
func resolveInput(cfg *config.Config) {
	if cfg.Input == "" {
		cfg.Input = os.Getenv(config.InputEnvVar)
	}
}
