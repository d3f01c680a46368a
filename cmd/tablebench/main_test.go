package main

import (
	"flag"
	"reflect"
	"testing"

	"github.com/baiguangmei/tablebench/pkg/config"
)

// benchFlags mirrors the flag surface main registers, on an isolated FlagSet,
// so tests can drive the explicitly-set detection in applyFlags.
type benchFlags struct {
	fs         *flag.FlagSet
	input      *string
	iterations *int
	warmup     *int
	targets    *string
	details    *bool
}

func newBenchFlags() *benchFlags {
	fs := flag.NewFlagSet("tablebench", flag.ContinueOnError)
	return &benchFlags{
		fs:         fs,
		input:      fs.String("input", "", ""),
		iterations: fs.Int("iterations", config.DefaultIterations, ""),
		warmup:     fs.Int("warmup", 0, ""),
		targets:    fs.String("targets", "", ""),
		details:    fs.Bool("details", false, ""),
	}
}

func (bf *benchFlags) apply(t *testing.T, cfg *config.Config, args ...string) {
	t.Helper()
	if err := bf.fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	applyFlags(cfg, bf.fs, *bf.input, *bf.iterations, *bf.warmup, *bf.targets, *bf.details)
}

func TestMergeFileConfig(t *testing.T) {
	tests := []struct {
		name     string
		file     config.Config
		expected config.Config
	}{
		{
			name:     "empty file keeps defaults",
			file:     config.Config{},
			expected: config.Default(),
		},
		{
			name: "file overrides defaults",
			file: config.Config{
				Input:      "data.csv",
				Iterations: 9,
				Warmup:     2,
				Targets:    []string{"gota"},
				Details:    true,
			},
			expected: config.Config{
				Input:      "data.csv",
				Iterations: 9,
				Warmup:     2,
				Targets:    []string{"gota"},
				Details:    true,
			},
		},
		{
			name:     "partial file keeps remaining defaults",
			file:     config.Config{Input: "data.csv"},
			expected: config.Config{Input: "data.csv", Iterations: config.DefaultIterations},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeFileConfig(config.Default(), tt.file)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestApplyFlags_FlagsWinOverFileValues(t *testing.T) {
	cfg := config.Config{
		Input:      "file.csv",
		Iterations: 9,
		Warmup:     2,
		Targets:    []string{"gota"},
		Details:    true,
	}

	bf := newBenchFlags()
	bf.apply(t, &cfg,
		"-input", "flag.csv",
		"-iterations", "3",
		"-warmup", "0", // explicit zero beats the file's 2
		"-targets", "stdcsv, gota")

	if cfg.Input != "flag.csv" {
		t.Errorf("input: expected flag.csv, got %q", cfg.Input)
	}
	if cfg.Iterations != 3 {
		t.Errorf("iterations: expected 3, got %d", cfg.Iterations)
	}
	if cfg.Warmup != 0 {
		t.Errorf("warmup: expected 0, got %d", cfg.Warmup)
	}
	if expected := []string{"stdcsv", "gota"}; !reflect.DeepEqual(cfg.Targets, expected) {
		t.Errorf("targets: expected %v, got %v", expected, cfg.Targets)
	}
	// -details was not passed, file value survives.
	if !cfg.Details {
		t.Error("details: expected file value true to survive")
	}
}

func TestApplyFlags_UnsetFlagsKeepFileValues(t *testing.T) {
	cfg := config.Config{Input: "file.csv", Iterations: 9, Warmup: 2, Details: true}
	before := cfg

	bf := newBenchFlags()
	bf.apply(t, &cfg)

	// No flags set: the flag defaults (including iterations' default 5) must
	// not clobber anything from the file.
	if !reflect.DeepEqual(cfg, before) {
		t.Errorf("expected %+v, got %+v", before, cfg)
	}
}

func TestApplyFlags_ExplicitFalseDetails(t *testing.T) {
	cfg := config.Config{Input: "file.csv", Iterations: 9, Details: true}

	bf := newBenchFlags()
	bf.apply(t, &cfg, "-details=false")

	if cfg.Details {
		t.Error("expected -details=false to unset the file value")
	}
}

func TestResolveInput_EnvIsLastResort(t *testing.T) {
	t.Setenv(config.InputEnvVar, "env.csv")

	cfg := config.Config{}
	resolveInput(&cfg)
	if cfg.Input != "env.csv" {
		t.Errorf("expected env fallback env.csv, got %q", cfg.Input)
	}

	cfg = config.Config{Input: "flag.csv"}
	resolveInput(&cfg)
	if cfg.Input != "flag.csv" {
		t.Errorf("expected flag value to win over environment, got %q", cfg.Input)
	}
}
