package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Locietta/distance-field-playground/pkg/geometry"
)

// LoadPLY reads an ASCII PLY triangle/quad mesh. It supports the
// minimal header subset the builder's visualization dumps also produce:
// an "element vertex" count, an "element face" count, and a body of
// "x y z" vertex lines followed by "n i0 i1 [i2 i3]" face lines. Quad
// faces are triangulated the same way the original C++ importer does:
// (v0,v1,v2) and (v2,v3,v0).
func LoadPLY(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: open %s: %w", path, err)
	}
	defer f.Close()

	return parsePLY(f)
}

func parsePLY(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !scanner.Scan() {
		return nil, fmt.Errorf("mesh: empty PLY file")
	}
	if strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("mesh: not a PLY file")
	}

	var vertexCount, faceCount int

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "end_header" {
			break
		}
		if fields[0] != "element" || len(fields) < 3 {
			continue
		}

		count, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("mesh: bad element count in %q: %w", line, err)
		}

		switch fields[1] {
		case "vertex":
			vertexCount = count
		case "face":
			faceCount = count
		}
	}

	m := &Mesh{
		Vertices:  make([]geometry.Vec3, 0, vertexCount),
		Triangles: make([]Triangle, 0, faceCount),
	}

	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("mesh: unexpected EOF reading vertex %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("mesh: malformed vertex line %q", scanner.Text())
		}
		x, _ := strconv.ParseFloat(fields[0], 64)
		y, _ := strconv.ParseFloat(fields[1], 64)
		z, _ := strconv.ParseFloat(fields[2], 64)
		m.Vertices = append(m.Vertices, geometry.Vec3{X: x, Y: y, Z: z})
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("mesh: unexpected EOF reading face %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("mesh: malformed face line %q", scanner.Text())
		}

		n, _ := strconv.Atoi(fields[0])
		idx := make([]uint32, n)
		for j := 0; j < n; j++ {
			v, _ := strconv.ParseUint(fields[1+j], 10, 32)
			idx[j] = uint32(v)
		}

		switch n {
		case 3:
			m.Triangles = append(m.Triangles, Triangle{idx[0], idx[1], idx[2]})
		case 4:
			// matches the original importer's quad split
			m.Triangles = append(m.Triangles, Triangle{idx[2], idx[3], idx[0]})
			m.Triangles = append(m.Triangles, Triangle{idx[0], idx[1], idx[2]})
		default:
			return nil, fmt.Errorf("mesh: unsupported face vertex count %d", n)
		}
	}

	return m, scanner.Err()
}
