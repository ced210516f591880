// Package effects describes the compute-shader effects of the gallery: which
// kernel each one runs, how it turns its fields and accumulated runtime phases
// into the kernel's parameter block, and how its fields are edited.
package effects

// Definition is the per-effect contract the frame driver relies on.
//
// Parameters must always return exactly ParamByteLength bytes; a mismatch with
// the size the kernel declares for its uniform block is not checked on the GPU.
// UpdateRuntime is called before Parameters in every frame so phase advances
// show up in the same dispatch.
type Definition interface {
	ID() EffectID
	Kernel() string
	ParamByteLength() int
	UpdateRuntime(store *Store, dt float64)
	Parameters(store *Store) []byte
}

// Static is an effect without a parameter block.
type Static struct {
	Effect     EffectID
	KernelName string
}

func (s *Static) ID() EffectID                  { return s.Effect }
func (s *Static) Kernel() string                { return s.KernelName }
func (s *Static) ParamByteLength() int          { return 0 }
func (s *Static) UpdateRuntime(*Store, float64) {}
func (s *Static) Parameters(*Store) []byte      { return []byte{} }
