package emitter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/apicradle/apicradle/internal/scaffold"
)

// Artifact paths inside a generated project. The set is fixed: one spec
// document, one server scaffold, one client demo, one readme.
const (
	SpecFile   = "openapi.yaml"
	ServerFile = "backend/main.py"
	ClientFile = "client_demo.py"
	ReadmeFile = "README.md"
)

// Options controls how Emit writes a project.
type Options struct {
	OutDir  string // required; target directory to write the project
	Force   bool   // overwrite a non-empty output directory
	DryRun  bool   // don't write, only plan
	Verbose bool
}

// PlannedFile describes a file the emitter intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files for a run.
type Result struct {
	Planned []PlannedFile
}

// Bundle assembles the four project artifacts for a request. Keys are
// slash-separated relative paths, values are verbatim file contents.
func Bundle(req scaffold.Request) (map[string]string, error) {
	specText, err := scaffold.BuildOpenAPI(req)
	if err != nil {
		return nil, err
	}
	serverText, err := scaffold.BuildServer(req)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		SpecFile:   specText,
		ServerFile: serverText,
		ClientFile: scaffold.BuildClient(req.Endpoints),
		ReadmeFile: fmt.Sprintf("# %s\n\n%s\n", req.Name, req.Description),
	}, nil
}

// Emit renders the project for req and writes it under opts.OutDir.
func Emit(ctx context.Context, req scaffold.Request, opts Options) (*Result, error) {
	_ = ctx
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("emitter: OutDir is required")
	}

	bundle, err := Bundle(req)
	if err != nil {
		return nil, err
	}
	files := make(map[string][]byte, len(bundle))
	for rel, content := range bundle {
		files[rel] = []byte(content)
	}

	// Plan in deterministic order
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, filepath.ToSlash(p))
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}

	return &Result{Planned: planned}, nil
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	// Pre-flight: if directory exists and not empty and not force, error.
	if st, err := os.Stat(abs); err == nil && st.IsDir() && !force {
		entries, rerr := os.ReadDir(abs)
		if rerr == nil && len(entries) > 0 {
			return fmt.Errorf("emitter: output directory %q is not empty (use --force to overwrite)", abs)
		}
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}
