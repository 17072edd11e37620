package gen

import (
	"fmt"
	"strings"
)

// Options configures a generation run. Build one with the With* chain and
// hand it to New.
type Options struct {
	outPath        string
	srcPaths       []string
	includePaths   []string
	packageName    string
	cleanupOutPath bool
}

// NewOptions returns an empty option set.
func NewOptions() *Options {
	return &Options{}
}

// WithOutPath sets the directory generated files are written to.
func (o *Options) WithOutPath(path string) *Options {
	o.outPath = path
	return o
}

// WithSrcPaths adds .proto files or directories to generate from.
func (o *Options) WithSrcPaths(paths ...string) *Options {
	o.srcPaths = append(o.srcPaths, paths...)
	return o
}

// WithIncludePaths adds import resolution roots.
func (o *Options) WithIncludePaths(paths ...string) *Options {
	o.includePaths = append(o.includePaths, paths...)
	return o
}

// WithPackageName overrides the Go package name of the generated files.
// When unset, the last component of each file's proto package is used.
func (o *Options) WithPackageName(name string) *Options {
	o.packageName = name
	return o
}

// WithCleanupOutPath removes stale generated files from the output
// directory before writing. Only files carrying the generated-code header
// are removed.
func (o *Options) WithCleanupOutPath(cleanup bool) *Options {
	o.cleanupOutPath = cleanup
	return o
}

func (o *Options) validate() error {
	if o.outPath == "" {
		return fmt.Errorf("output path is required")
	}
	if len(o.srcPaths) == 0 {
		return fmt.Errorf("at least one source path is required")
	}
	if o.packageName != "" && !validGoPackage(o.packageName) {
		return fmt.Errorf("invalid Go package name %q", o.packageName)
	}
	return nil
}

func validGoPackage(name string) bool {
	for i, r := range name {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != ""
}

// goPackageFor derives the Go package name for a proto file.
func (o *Options) goPackageFor(protoPackage string) string {
	if o.packageName != "" {
		return o.packageName
	}
	if protoPackage == "" {
		return "pb"
	}
	parts := strings.Split(protoPackage, ".")
	last := parts[len(parts)-1]
	if !validGoPackage(last) {
		return "pb"
	}
	return strings.ToLower(last)
}
