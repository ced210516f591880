package shaders

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gekko3d/shaderlab/labrt/rt/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLibraryCoversCatalog(t *testing.T) {
	lib := Default()
	for _, k := range effects.Kernels() {
		assert.True(t, lib.Has(k), "missing kernel %s", k)
	}
}

func TestSourcePrependsWorkgroupHeader(t *testing.T) {
	lib := Default()
	src, err := lib.Source("helloWorld", 8, 32)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(src, "const WG_X: u32 = 8u;\nconst WG_Y: u32 = 32u;\n"))
	assert.Contains(t, src, "var outTex: texture_storage_2d<rgba8unorm, write>")
	assert.Contains(t, src, "@workgroup_size(WG_X, WG_Y, 1)")
	assert.Contains(t, src, "fn "+EntryPoint+"(")
}

func TestSourceClampsZeroGroup(t *testing.T) {
	src, err := Default().Source("coordinates", 0, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src, Header(1, 1)))
}

func TestSourceUnknownKernel(t *testing.T) {
	_, err := Default().Source("doesNotExist", 8, 8)
	assert.ErrorIs(t, err, ErrKernelNotFound)
}

func TestParameterizedKernelsBindUniform(t *testing.T) {
	lib := Default()
	for _, e := range effects.Catalog() {
		def := e.New()
		src, err := lib.Source(def.Kernel(), 8, 8)
		require.NoError(t, err)
		hasUniform := strings.Contains(src, "@binding(1) var<uniform>")
		assert.Equal(t, def.ParamByteLength() > 0, hasUniform, "effect %s", e.ID)
	}
}

func TestLoadSkipsForeignFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"k/a.wgsl":     {Data: []byte("// a")},
		"k/b.txt":      {Data: []byte("not a kernel")},
		"k/sub/c.wgsl": {Data: []byte("// c")},
	}
	lib, err := load(fsys, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, lib.Names())
}
