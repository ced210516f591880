// Package shaders holds the WGSL kernels of the effect catalog.
//
// Every kernel lives in kernels/<name>.wgsl, exposes a compute entry point
// called main and is compiled together with common.wgsl. The workgroup size
// is not fixed in the source: Source prepends WG_X and WG_Y constants sized
// for the device the kernel is compiled on.
package shaders

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed common.wgsl
var CommonWGSL string

//go:embed blit.wgsl
var BlitWGSL string

//go:embed kernels/*.wgsl
var kernelFS embed.FS

// EntryPoint is the compute entry of every kernel.
const EntryPoint = "main"

var ErrKernelNotFound = errors.New("kernel not found")

type Library struct {
	kernels map[string]string
}

// Default loads every embedded kernel.
func Default() *Library {
	lib, err := load(kernelFS, "kernels")
	if err != nil {
		panic(err)
	}
	return lib
}

func load(fsys fs.FS, dir string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read kernel dir: %w", err)
	}
	lib := &Library{kernels: make(map[string]string, len(entries))}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".wgsl" {
			continue
		}
		src, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read kernel %s: %w", e.Name(), err)
		}
		lib.kernels[strings.TrimSuffix(e.Name(), ".wgsl")] = string(src)
	}
	return lib, nil
}

func (l *Library) Has(name string) bool {
	_, ok := l.kernels[name]
	return ok
}

// Names returns the kernel names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.kernels))
	for n := range l.kernels {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Source returns the compilable WGSL for a kernel with a workgroup of
// groupX by groupY invocations.
func (l *Library) Source(name string, groupX, groupY uint32) (string, error) {
	body, ok := l.kernels[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrKernelNotFound, name)
	}
	if groupX == 0 {
		groupX = 1
	}
	if groupY == 0 {
		groupY = 1
	}
	var b strings.Builder
	b.Grow(len(Header(groupX, groupY)) + len(CommonWGSL) + len(body) + 2)
	b.WriteString(Header(groupX, groupY))
	b.WriteString(CommonWGSL)
	b.WriteByte('\n')
	b.WriteString(body)
	return b.String(), nil
}

// Header declares the workgroup constants used by @workgroup_size.
func Header(groupX, groupY uint32) string {
	return fmt.Sprintf("const WG_X: u32 = %du;\nconst WG_Y: u32 = %du;\n\n", groupX, groupY)
}
