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

// MTL format errors.
var (
	ErrMTLNoMaterial     = errors.New("material property before newmtl")
	ErrMalformedMTLValue = errors.New("malformed MTL value")
)

// Material is one newmtl block of a Wavefront material library.
type Material struct {
	Name     string
	Ambient  [4]float32
	Diffuse  [4]float32
	Specular [4]float32

	// Shininess is Ns rescaled from [0,1000] to [0,1].
	Shininess float32
	// Alpha is d: 0 = fully transparent, 1 = fully opaque.
	Alpha float32

	ColorMap string // map_Kd
	BumpMap  string // map_bump / bump
}

// defaultMaterial returns a material with the fixed-function GL defaults.
func defaultMaterial(name string) Material {
	return Material{
		Name:     name,
		Ambient:  [4]float32{0.2, 0.2, 0.2, 1},
		Diffuse:  [4]float32{0.8, 0.8, 0.8, 1},
		Specular: [4]float32{0, 0, 0, 1},
		Alpha:    1,
	}
}

// MTL is a parsed material library.
type MTL struct {
	Materials []Material
	index     map[string]int
}

// Lookup returns the named material.
func (m *MTL) Lookup(name string) (*Material, bool) {
	i, ok := m.index[name]
	if !ok {
		return nil, false
	}
	return &m.Materials[i], true
}

// LoadMTL opens and parses an MTL file.
func LoadMTL(path string) (*MTL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, path, err)
	}
	defer f.Close()

	mtl, err := ParseMTL(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mtl, nil
}

// ParseMTL reads newmtl, Ka, Kd, Ks, Ns, d, illum, map_Kd and bump records.
// A repeated material name replaces the earlier definition.
func ParseMTL(r io.Reader) (*MTL, error) {
	mtl := &MTL{index: make(map[string]int)}
	curIdx := -1

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		key := fields[0]
		if key == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: newmtl without name: %w", lineNum, ErrMalformedMTLValue)
			}
			name := fields[1]
			if i, ok := mtl.index[name]; ok {
				mtl.Materials[i] = defaultMaterial(name)
				curIdx = i
				continue
			}
			curIdx = len(mtl.Materials)
			mtl.index[name] = curIdx
			mtl.Materials = append(mtl.Materials, defaultMaterial(name))
			continue
		}

		switch key {
		case "Ka", "Kd", "Ks", "Ns", "d", "Tr", "illum", "map_Kd", "map_bump", "bump":
		default:
			continue
		}
		if curIdx < 0 {
			return nil, fmt.Errorf("line %d: %s: %w", lineNum, key, ErrMTLNoMaterial)
		}
		cur := &mtl.Materials[curIdx]

		var err error
		switch key {
		case "Ka":
			err = parseColor(fields[1:], &cur.Ambient)
		case "Kd":
			err = parseColor(fields[1:], &cur.Diffuse)
		case "Ks":
			err = parseColor(fields[1:], &cur.Specular)
		case "Ns":
			var ns float32
			if ns, err = parseScalar(fields[1:]); err == nil {
				cur.Shininess = ns / 1000
			}
		case "d":
			cur.Alpha, err = parseScalar(fields[1:])
		case "Tr":
			var tr float32
			if tr, err = parseScalar(fields[1:]); err == nil {
				cur.Alpha = 1 - tr
			}
		case "illum":
			var illum float32
			if illum, err = parseScalar(fields[1:]); err == nil && illum == 1 {
				cur.Specular = [4]float32{0, 0, 0, 1}
			}
		case "map_Kd":
			cur.ColorMap = lastField(fields)
		case "map_bump", "bump":
			cur.BumpMap = lastField(fields)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNum, key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}

	return mtl, nil
}

// parseColor reads an RGB triple into dst and forces alpha to 1.
func parseColor(fields []string, dst *[4]float32) error {
	if len(fields) < 3 {
		return ErrMalformedMTLValue
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return fmt.Errorf("%q: %w", fields[i], ErrMalformedMTLValue)
		}
		dst[i] = float32(v)
	}
	dst[3] = 1
	return nil
}

func parseScalar(fields []string) (float32, error) {
	if len(fields) < 1 {
		return 0, ErrMalformedMTLValue
	}
	v, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", fields[0], ErrMalformedMTLValue)
	}
	return float32(v), nil
}

// lastField returns the file name of a map record; options such as
// "-bm 0.5" come before it.
func lastField(fields []string) string {
	if len(fields) < 2 {
		return ""
	}
	return fields[len(fields)-1]
}
