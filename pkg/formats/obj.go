// Package formats parses Wavefront OBJ meshes and MTL material libraries.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOpen              = errors.New("cannot open file")
	ErrUnsupportedFace   = errors.New("unsupported face: expected exactly 3 pos/uv/normal triples")
	ErrIndexOutOfRange   = errors.New("face index out of range")
	ErrMalformedOBJValue = errors.New("malformed OBJ value")
)

// OBJ holds triangle-soup geometry flattened from a Wavefront OBJ file.
// Every face corner becomes its own vertex; nothing is shared or indexed.
type OBJ struct {
	Vertices  []float32 // xyz per corner
	Normals   []float32 // xyz per corner
	TexCoords []float32 // uv per corner

	// Materials lists usemtl names in first-seen order, without duplicates.
	Materials []string
	// MaterialLibs lists mtllib references as written in the file.
	MaterialLibs []string
}

// VertexCount returns the number of flattened corners.
func (o *OBJ) VertexCount() int {
	return len(o.Vertices) / 3
}

// TriangleCount returns the number of faces.
func (o *OBJ) TriangleCount() int {
	return o.VertexCount() / 3
}

// objFace holds the nine 1-based indices of a triangle, in file order:
// pos/uv/normal for each of the three corners.
type objFace [9]int

// LoadOBJ opens and parses an OBJ file.
func LoadOBJ(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	obj, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// ParseOBJ reads the v/vt/vn/f/usemtl subset of the OBJ format.
// Faces must be triangles written as pos/uv/normal triples. Any other
// record type is skipped. On error no geometry is returned.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	var (
		positions [][3]float32
		uvs       [][2]float32
		normals   [][3]float32
		faces     []objFace
	)
	obj := &OBJ{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: v: %w", lineNum, err)
			}
			positions = append(positions, [3]float32{v[0], v[1], v[2]})

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: vt: %w", lineNum, err)
			}
			uvs = append(uvs, [2]float32{v[0], v[1]})

		case "vn":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vn: %w", lineNum, err)
			}
			normals = append(normals, [3]float32{v[0], v[1], v[2]})

		case "f":
			face, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			faces = append(faces, face)

		case "usemtl":
			if len(fields) < 2 {
				continue
			}
			name := fields[1]
			if !seen[name] {
				seen[name] = true
				obj.Materials = append(obj.Materials, name)
			}

		case "mtllib":
			obj.MaterialLibs = append(obj.MaterialLibs, fields[1:]...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	obj.Vertices = make([]float32, 0, len(faces)*9)
	obj.Normals = make([]float32, 0, len(faces)*9)
	obj.TexCoords = make([]float32, 0, len(faces)*6)

	for fi, face := range faces {
		for corner := 0; corner < 3; corner++ {
			pi, ti, ni := face[corner*3], face[corner*3+1], face[corner*3+2]
			if pi > len(positions) || ti > len(uvs) || ni > len(normals) {
				return nil, fmt.Errorf("face %d corner %d (%d/%d/%d): %w", fi+1, corner+1, pi, ti, ni, ErrIndexOutOfRange)
			}

			p := positions[pi-1]
			obj.Vertices = append(obj.Vertices, p[0], p[1], p[2])

			uv := uvs[ti-1]
			obj.TexCoords = append(obj.TexCoords, uv[0], uv[1])

			n := normals[ni-1]
			obj.Normals = append(obj.Normals, n[0], n[1], n[2])
		}
	}

	return obj, nil
}

// parseFace parses exactly three "p/t/n" corners into nine positive indices.
func parseFace(corners []string) (objFace, error) {
	var face objFace
	if len(corners) != 3 {
		return face, fmt.Errorf("%d corners: %w", len(corners), ErrUnsupportedFace)
	}

	for i, corner := range corners {
		parts := strings.Split(corner, "/")
		if len(parts) != 3 {
			return face, fmt.Errorf("corner %q: %w", corner, ErrUnsupportedFace)
		}
		for j, part := range parts {
			idx, err := strconv.Atoi(part)
			if err != nil {
				return face, fmt.Errorf("corner %q: %w", corner, ErrUnsupportedFace)
			}
			if idx < 1 {
				return face, fmt.Errorf("corner %q: %w", corner, ErrIndexOutOfRange)
			}
			face[i*3+j] = idx
		}
	}
	return face, nil
}

// parseFloats parses at least n floats from fields. Extra fields (such as
// the optional w of a vt record) are ignored.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d: %w", n, len(fields), ErrMalformedOBJValue)
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", fields[i], ErrMalformedOBJValue)
		}
		out[i] = float32(v)
	}
	return out, nil
}
