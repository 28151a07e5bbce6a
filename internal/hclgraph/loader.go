package hclgraph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/sodggo/internal/ctxlog"
	"github.com/specialistvlad/sodggo/internal/fsutil"
	"github.com/specialistvlad/sodggo/internal/graph"
)

// Unit is one loaded file and the graph built from it.
type Unit struct {
	Path  string
	Graph *graph.Graph
}

// Loader turns HCL graph files into graphs.
type Loader struct {
	opts []graph.Option
}

// NewLoader creates a loader. The options are applied to every graph it
// builds.
func NewLoader(opts ...graph.Option) *Loader {
	return &Loader{opts: opts}
}

// Load reads every .hcl file found under paths and returns one unit per file
// in lexical path order. Paths may be files or directories; missing paths are
// skipped.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]Unit, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	units := make([]Unit, 0, len(files))
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		g, err := l.decode(ctx, hclFile)
		if err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
		units = append(units, Unit{Path: file, Graph: g})
	}

	logger.Debug("HCL loading complete.", "units", len(units))
	return units, nil
}

// Parse builds a graph from HCL source held in memory.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*graph.Graph, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	g, err := l.decode(ctx, hclFile)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	return g, nil
}

func (l *Loader) decode(ctx context.Context, file *hcl.File) (*graph.Graph, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, diags
	}
	return l.translate(ctx, root.Vertices)
}

// findAllHCLFiles walks all given paths and returns a sorted list of the
// .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	sort.Strings(allFiles)
	return allFiles, nil
}
