package particle

import "math"

// Box describes the simulation box geometry.
// Periodic axes wrap distances via the minimum image convention.
type Box struct {
	L        Vec3
	Periodic [3]bool
}

// NewBox creates a fully periodic box with the given edge lengths.
func NewBox(lx, ly, lz float64) Box {
	return Box{
		L:        Vec3{lx, ly, lz},
		Periodic: [3]bool{true, true, true},
	}
}

// OpenBox creates a box with no periodic boundaries; distances are plain
// Euclidean distances regardless of the edge lengths.
func OpenBox() Box {
	return Box{}
}

// MinimumImage returns the minimum image vector from a to b.
func (b Box) MinimumImage(a, p Vec3) Vec3 {
	d := p.Sub(a)
	for k := 0; k < 3; k++ {
		if !b.Periodic[k] || b.L[k] <= 0 {
			continue
		}
		d[k] -= b.L[k] * math.Round(d[k]/b.L[k])
	}
	return d
}

// Distance returns the minimum image distance between a and b.
func (b Box) Distance(a, p Vec3) float64 {
	return b.MinimumImage(a, p).Norm()
}
