package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pbweave/pbweave/registry"
)

const generatedHeader = "// Code generated by pbweavec. DO NOT EDIT."

// Generator renders Go source for every file loaded into a registry.
type Generator struct {
	opts *Options
	reg  *registry.Registry
}

// New validates the options, loads the schemas named by the source paths,
// and returns a generator ready to run. Load or validation failures surface
// here, before anything touches the output directory.
func New(opts *Options) (*Generator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	reg := registry.NewRegistry()
	reg.ProtoDirectories = opts.includePaths
	for _, src := range opts.srcPaths {
		if strings.HasSuffix(src, ".binpb") || strings.HasSuffix(src, ".pb") {
			if err := reg.LoadDescriptorSet(src); err != nil {
				return nil, err
			}
			continue
		}
		if err := reg.LoadSchema(src); err != nil {
			return nil, err
		}
	}

	return &Generator{opts: opts, reg: reg}, nil
}

// Registry exposes the loaded schema graph, mainly for inspection commands.
func (g *Generator) Registry() *registry.Registry {
	return g.reg
}

// Run renders every file and then writes the results. All files are
// rendered in memory first so a failure in any of them leaves the output
// directory untouched.
func (g *Generator) Run() ([]string, error) {
	outputs := make(map[string][]byte)
	for path, file := range g.reg.Files() {
		fg := &fileGen{goPackage: g.opts.goPackageFor(file.Package)}
		src := fg.generate(file)
		outputs[outFileName(path)] = src
	}

	if g.opts.cleanupOutPath {
		if err := cleanupGenerated(g.opts.outPath); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(g.opts.outPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	written := make([]string, 0, len(outputs))
	for name, src := range outputs {
		dest := filepath.Join(g.opts.outPath, name)
		if err := os.WriteFile(dest, src, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", dest, err)
		}
		written = append(written, dest)
	}
	sort.Strings(written)
	return written, nil
}

// outFileName maps a proto file path to its generated file name.
func outFileName(protoPath string) string {
	base := filepath.Base(protoPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".pb.go"
}

// cleanupGenerated removes previously generated files from the output
// directory. Files without the generated-code header are left alone.
func cleanupGenerated(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read output directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pb.go") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(data, []byte(generatedHeader)) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
