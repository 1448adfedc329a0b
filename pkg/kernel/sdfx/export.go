package sdfx

import (
	"fmt"
	"os"

	"github.com/deadsy/sdfx/render"

	"github.com/pzfreo/wormgear-sub002/pkg/kernel"
)

// To3MF writes the solid to a 3MF file at the given marching-cubes
// resolution. The sdfx writer reports failures on its own log rather
// than returning them, so the output file is checked afterwards.
func (k *Kernel) To3MF(s kernel.Solid, path string, cells int) error {
	if cells <= 0 {
		cells = defaultMeshCells
	}
	render.To3MF(unwrap(s), path, render.NewMarchingCubesUniform(cells))
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("3mf export produced no file at %s: %w", path, err)
	}
	return nil
}
