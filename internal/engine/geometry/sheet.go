package geometry

// Aperture window of the wall. A corner at (x, y) with x in [colMin, 14]
// and y in [stackMin, stackMin+1] is pulled onto x = 14, collapsing the
// quads there into a strip.
const (
	apertureX        = 14
	apertureColMax   = 14
	apertureStackMin = 5
)

// sheetRows returns the number of stacks in a sheet: ceil(segments/2).
func sheetRows(segments int) int {
	return (segments + 1) / 2
}

// TramRail returns a flat sheet of unit quads in z=0, segments columns wide
// and ceil(segments/2) stacks tall. The scene folds it into rails, docks,
// doors and floor planes with scale and rotate transforms.
func TramRail(radius float32, segments int) *Mesh {
	checkArgs("tram rail", radius, segments)

	rows := sheetRows(segments)
	b := newBuilder("tram rail", Quads, 4*segments*rows)
	n := [3]float32{0, 0, 1 / radius}
	du := 1 / float32(segments)
	dv := 1 / (float32(segments) / 2)

	for col := range segments {
		for st := range rows {
			x0, x1 := float32(col), float32(col+1)
			y0, y1 := float32(st), float32(st+1)
			u0, v0 := x0*du, y0*dv

			b.add([3]float32{x0, y0, 0}, n, u0, v0)
			b.add([3]float32{x0, y1, 0}, n, u0, v0+dv)
			b.add([3]float32{x1, y1, 0}, n, u0+du, v0+dv)
			b.add([3]float32{x1, y0, 0}, n, u0+du, v0)
		}
	}
	return b.mesh
}

// Wall returns the tram rail sheet with an aperture cut by wallCorner.
// UVs run stacks along u and columns along v.
func Wall(radius float32, segments int) *Mesh {
	checkArgs("wall", radius, segments)

	rows := sheetRows(segments)
	b := newBuilder("wall", Quads, 4*segments*rows)
	n := [3]float32{0, 0, 1 / radius}
	dv := 1 / float32(segments)
	du := 1 / (float32(segments) / 2)

	for col := range segments {
		for st := range rows {
			u0, v0 := float32(st)*du, float32(col)*dv

			b.add(wallCorner(col, st, 6, apertureStackMin), n, u0, v0)
			b.add(wallCorner(col, st+1, 6, apertureStackMin+1), n, u0+du, v0)
			b.add(wallCorner(col+1, st+1, 7, apertureStackMin+1), n, u0+du, v0+dv)
			b.add(wallCorner(col+1, st, 7, apertureStackMin), n, u0, v0+dv)
		}
	}
	return b.mesh
}

// wallCorner returns the position of grid corner (x, y). The window edges
// depend on which corner of the cell is asked for: corners on the cell's
// right column use colMin 7, corners on its top row use stackMin 6.
func wallCorner(x, y, colMin, stackMin int) [3]float32 {
	if x >= colMin && x <= apertureColMax && y >= stackMin && y <= stackMin+1 {
		x = apertureX
	}
	return [3]float32{float32(x), float32(y), 0}
}
