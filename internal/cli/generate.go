package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apicradle/apicradle/internal/emitter"
	"github.com/apicradle/apicradle/internal/scaffold"
	"github.com/apicradle/apicradle/internal/speccheck"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// GenerateConfig captures all inputs that influence the generate command
// after merging defaults, config file values, and CLI overrides.
type GenerateConfig struct {
	Demo        string
	Input       string
	Name        string
	Version     string
	Description string
	Requirement string
	Format      string
	Out         string
	ConfigPath  string
	DryRun      bool
	Force       bool
	Verbose     bool
}

func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{Format: "dir"}
}

var generateRunner = runGenerate

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a demo API project from an endpoint set",
		Long: "Generate a demo API project (OpenAPI document, FastAPI server scaffold, " +
			"client demo script, README) from a built-in demo, a request file, or the " +
			"custom-requirement template. Options can be provided via flags, config files, or defaults.",
		Example: strings.TrimSpace(`  apicradle generate --demo "Todo API" --out ./todo-api
  apicradle generate --input request.yaml --format zip
  apicradle --config apicradle.yaml generate --force --dry-run`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveGenerateConfig(cmd)
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("demo", "", "Built-in demo API to generate (see: Todo API, Notes API, Calculator API)")
	flags.String("input", "", "Path to a YAML request file describing the API")
	flags.String("name", "", "API name for the custom-requirement path")
	flags.String("api-version", "", "API version for the custom-requirement path (defaults to 0.1.0)")
	flags.String("description", "", "API description for the custom-requirement path")
	flags.String("requirement", "", "Free-form requirement text (accepted, not parsed)")
	flags.String("format", "", "Output format (dir|zip); defaults to dir")
	flags.String("out", "", "Output directory or archive path (derived from the API name when omitted)")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("force", false, "Overwrite existing output when set")

	return cmd
}

func resolveGenerateConfig(cmd *cobra.Command) (*GenerateConfig, error) {
	cfg := defaultGenerateConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	configPath = strings.TrimSpace(configPath)
	if configPath != "" {
		cfg.ConfigPath = configPath
		if err := applyGenerateConfigFromFile(&cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := applyGenerateFlagOverrides(cmd.Flags(), &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyGenerateFlagOverrides(flags *pflag.FlagSet, cfg *GenerateConfig) error {
	stringFlags := map[string]*string{
		"demo":        &cfg.Demo,
		"input":       &cfg.Input,
		"name":        &cfg.Name,
		"api-version": &cfg.Version,
		"description": &cfg.Description,
		"requirement": &cfg.Requirement,
		"format":      &cfg.Format,
		"out":         &cfg.Out,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = strings.TrimSpace(value)
	}

	boolFlags := map[string]*bool{
		"dry-run": &cfg.DryRun,
		"force":   &cfg.Force,
		"verbose": &cfg.Verbose,
	}
	for name, dst := range boolFlags {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = value
	}

	return nil
}

func (c *GenerateConfig) normalize() {
	c.Demo = strings.TrimSpace(c.Demo)
	c.Input = strings.TrimSpace(c.Input)
	c.Name = strings.TrimSpace(c.Name)
	c.Version = strings.TrimSpace(c.Version)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Out = strings.TrimSpace(c.Out)
}

func (c *GenerateConfig) validate() error {
	if c.Demo != "" && c.Input != "" {
		return newUsageError("generate: --demo and --input are mutually exclusive")
	}
	if c.Demo != "" {
		if _, ok := scaffold.DemoRequest(c.Demo); !ok {
			return newUsageError(fmt.Sprintf("generate: unknown demo %q (available: %s)",
				c.Demo, strings.Join(scaffold.DemoNames(), ", ")))
		}
	}

	switch c.Format {
	case "":
		c.Format = "dir"
	case "dir", "zip":
	default:
		return newUsageError(fmt.Sprintf("generate: unsupported --format %q (allowed: dir, zip)", c.Format))
	}

	return nil
}

// resolveRequest builds the generation request from the configured source:
// a built-in demo, a request file, or the custom-requirement template.
func resolveRequest(cfg *GenerateConfig) (scaffold.Request, error) {
	if cfg.Demo != "" {
		req, ok := scaffold.DemoRequest(cfg.Demo)
		if !ok {
			// Should not happen due to earlier validation, but keep defensive.
			return scaffold.Request{}, newUsageError(fmt.Sprintf("generate: unknown demo %q", cfg.Demo))
		}
		return req, nil
	}
	if cfg.Input != "" {
		return loadRequestFile(cfg.Input)
	}
	return scaffold.CustomRequest(cfg.Name, cfg.Version, cfg.Description, cfg.Requirement), nil
}

func loadRequestFile(path string) (scaffold.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return scaffold.Request{}, newUsageError(fmt.Sprintf("read request file %q: %v", path, err))
	}
	var req scaffold.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return scaffold.Request{}, newUsageError(fmt.Sprintf("parse request file %q: %v", path, err))
	}
	if strings.TrimSpace(req.Name) == "" {
		return scaffold.Request{}, newUsageError(fmt.Sprintf("request file %q: name is required", path))
	}
	if strings.TrimSpace(req.Version) == "" {
		req.Version = scaffold.DefaultVersion
	}
	return req, nil
}

func runGenerate(ctx context.Context, cfg *GenerateConfig) error {
	req, err := resolveRequest(cfg)
	if err != nil {
		return err
	}

	bundle, err := emitter.Bundle(req)
	if err != nil {
		return err
	}

	// Re-check the generated document. Validation findings are expected for
	// the {{baseUrl}} placeholder server entry and stay warnings; a parse
	// failure means the generator itself is broken.
	if _, err := speccheck.Validate(ctx, []byte(bundle[emitter.SpecFile])); err != nil {
		var se *speccheck.SpecError
		if errors.As(err, &se) && se.Code == speccheck.ValidationError {
			if cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[WARN] generated spec: %s\n", se.Message)
			}
		} else {
			return fmt.Errorf("generated spec does not parse: %w", err)
		}
	}

	out := cfg.Out
	switch cfg.Format {
	case "zip":
		if out == "" {
			out = emitter.ArchiveName(req.Name)
		}
		if err := writeArchive(bundle, out, cfg.DryRun, cfg.Force); err != nil {
			return err
		}
	default:
		if out == "" {
			out = deriveProjectDir(req.Name)
		}
		absOut := out
		if ap, err := filepath.Abs(out); err == nil {
			absOut = ap
		}
		res, err := emitter.Emit(ctx, req, emitter.Options{
			OutDir:  out,
			Force:   cfg.Force,
			DryRun:  cfg.DryRun,
			Verbose: cfg.Verbose,
		})
		if err != nil {
			return wrapOutputError(err, absOut)
		}
		if cfg.DryRun {
			paths := make([]string, 0, len(res.Planned))
			for _, p := range res.Planned {
				paths = append(paths, p.RelPath)
			}
			printPlan(absOut, paths)
		} else {
			fmt.Fprintf(os.Stdout, "Wrote project to %s (%d files)\n", absOut, len(res.Planned))
		}
	}

	score := scaffold.Score(req.Endpoints)
	fmt.Fprintf(os.Stdout, "Quality score: %d/10 (%s)\n", score, scaffold.Interpretation(score))
	return nil
}

func writeArchive(bundle map[string]string, out string, dryRun, force bool) error {
	abs := out
	if ap, err := filepath.Abs(out); err == nil {
		abs = ap
	}
	blob, err := emitter.Archive(bundle)
	if err != nil {
		return err
	}
	if dryRun {
		names := make([]string, 0, len(bundle))
		for name := range bundle {
			names = append(names, name)
		}
		printPlan(abs, sortedStrings(names))
		return nil
	}
	if st, err := os.Stat(abs); err == nil && st.Mode().IsRegular() && !force {
		return newUsageError(fmt.Sprintf("generate: %q already exists (use --force to overwrite)", abs))
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return wrapOutputError(fmt.Errorf("mkdir: %w", err), abs)
	}
	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return wrapOutputError(fmt.Errorf("write temp archive: %w", err), abs)
	}
	if err := os.Rename(tmp, abs); err != nil {
		_ = os.Remove(tmp)
		return wrapOutputError(fmt.Errorf("rename archive: %w", err), abs)
	}
	fmt.Fprintf(os.Stdout, "Wrote archive to %s (%d entries)\n", abs, len(bundle))
	return nil
}

func printPlan(out string, relPaths []string) {
	fmt.Fprintf(os.Stdout, "Planned writes to %s (%d files):\n", out, len(relPaths))
	for _, p := range relPaths {
		fmt.Fprintf(os.Stdout, "- %s\n", p)
	}
}

func wrapOutputError(err error, out string) error {
	// Provide clearer guidance for common FS failures.
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") || strings.Contains(lower, "mkdir") || strings.Contains(lower, "rename") || strings.Contains(lower, "output directory") {
		return newUsageError(fmt.Sprintf("output error for %s: %s\nHint: choose a different --out or use --force when appropriate.", out, msg))
	}
	return err
}

func deriveProjectDir(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "api-project"
	}
	return out
}

func sortedStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

func applyGenerateConfigFromFile(cfg *GenerateConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newUsageError(fmt.Sprintf("read config file %q: %v", path, err))
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return newUsageError(fmt.Sprintf("parse config file %q: %v", path, err))
	}

	for key, value := range raw {
		normalized := normalizeKey(key)
		switch normalized {
		case "demo":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Demo = str
		case "input":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Input = str
		case "name":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Name = str
		case "apiversion", "version":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Version = str
		case "description":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Description = str
		case "requirement":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Requirement = str
		case "format":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Format = str
		case "out":
			str, err := valueAsString(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Out = str
		case "dryrun":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.DryRun = val
		case "force":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Force = val
		case "verbose":
			val, err := valueAsBool(value)
			if err != nil {
				return newUsageError(fmt.Sprintf("config field %q: %v", key, err))
			}
			cfg.Verbose = val
		default:
			return newUsageError(fmt.Sprintf("config file %q: unknown field %q", path, key))
		}
	}

	return nil
}

func normalizeKey(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = strings.ReplaceAll(lowered, "-", "")
	lowered = strings.ReplaceAll(lowered, "_", "")
	return lowered
}

func valueAsString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func valueAsBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(val))
		switch trimmed {
		case "true", "t", "1", "yes", "y":
			return true, nil
		case "false", "f", "0", "no", "n":
			return false, nil
		case "":
			return false, nil
		default:
			return false, fmt.Errorf("invalid boolean value %q", val)
		}
	case nil:
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}
