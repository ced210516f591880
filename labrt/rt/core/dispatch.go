package core

// Size3 is a dispatch extent in threads or workgroups.
type Size3 struct {
	X, Y, Z uint32
}

// Sizing pairs the workgroup tile with the number of workgroups needed to
// cover an output texture.
type Sizing struct {
	Group Size3
	Grid  Size3
}

// Threads is the total extent the grid covers, which may exceed the texture.
func (s Sizing) Threads() Size3 {
	return Size3{s.Group.X * s.Grid.X, s.Group.Y * s.Grid.Y, s.Group.Z * s.Grid.Z}
}

// Covers reports whether the dispatch reaches every pixel of a width x height
// texture.
func (s Sizing) Covers(width, height uint32) bool {
	t := s.Threads()
	return t.X >= width && t.Y >= height
}

// Dispatch sizes a 2D compute dispatch. The workgroup is executionWidth wide
// and maxThreads/executionWidth tall; the grid over-allocates to the next whole
// tile in both axes, so kernels must bounds check against the texture.
func Dispatch(executionWidth, maxThreads, width, height uint32) Sizing {
	w := executionWidth
	if w == 0 {
		w = 1
	}
	if maxThreads < w {
		maxThreads = w
	}
	h := maxThreads / w
	return Sizing{
		Group: Size3{w, h, 1},
		Grid:  Size3{ceilDiv(width, w), ceilDiv(height, h), 1},
	}
}

func ceilDiv(n, d uint32) uint32 {
	return (n + d - 1) / d
}
