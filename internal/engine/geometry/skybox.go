package geometry

// Skybox returns a unit cube centred on the origin, faces wound inward, with
// UVs laid out as a horizontal cross: front, back, left, right, top, bottom.
// The scene draws it at the camera position with depth testing off.
func Skybox() *Mesh {
	type corner struct {
		u, v    float32
		x, y, z float32
	}
	faces := [6][4]corner{
		// front
		{{0.5, 0.25, 0.5, 0.5, -0.5}, {0.25, 0.25, -0.5, 0.5, -0.5}, {0.25, 0.5, -0.5, -0.5, -0.5}, {0.5, 0.5, 0.5, -0.5, -0.5}},
		// back
		{{0.75, 0.25, 0.5, 0.5, 0.5}, {1, 0.25, -0.5, 0.5, 0.5}, {1, 0.5, -0.5, -0.5, 0.5}, {0.75, 0.5, 0.5, -0.5, 0.5}},
		// left
		{{0.25, 0.25, -0.5, 0.5, -0.5}, {0, 0.25, -0.5, 0.5, 0.5}, {0, 0.5, -0.5, -0.5, 0.5}, {0.25, 0.5, -0.5, -0.5, -0.5}},
		// right
		{{0.75, 0.25, 0.5, 0.5, 0.5}, {0.5, 0.25, 0.5, 0.5, -0.5}, {0.5, 0.5, 0.5, -0.5, -0.5}, {0.75, 0.5, 0.5, -0.5, 0.5}},
		// top
		{{0.5, 0.25, 0.5, 0.5, -0.5}, {0.25, 0.25, -0.5, 0.5, -0.5}, {0.25, 0, -0.5, 0.5, 0.5}, {0.5, 0, 0.5, 0.5, 0.5}},
		// bottom
		{{0.5, 0.5, 0.5, -0.5, -0.5}, {0.25, 0.5, -0.5, -0.5, -0.5}, {0.25, 0.75, -0.5, -0.5, 0.5}, {0.5, 0.75, 0.5, -0.5, 0.5}},
	}
	normals := [6][3]float32{
		{0, 0, 1}, {0, 0, -1}, {1, 0, 0}, {-1, 0, 0}, {0, -1, 0}, {0, 1, 0},
	}

	b := newBuilder("skybox", Quads, 24)
	for i, face := range faces {
		for _, c := range face {
			b.add([3]float32{c.x, c.y, c.z}, normals[i], c.u, c.v)
		}
	}
	return b.mesh
}
