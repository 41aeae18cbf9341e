package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// ErrMalformedOBJ is wrapped by every OBJ syntax or reference error.
var ErrMalformedOBJ = errors.New("malformed OBJ")

// maxOBJLine bounds a single statement; large n-gon faces run well past bufio's 64 KiB default.
const maxOBJLine = 16 * 1024 * 1024

// objRef is one resolved face corner: 0-based indices, -1 when absent.
type objRef struct {
	v, vt, vn int
}

type objParser struct {
	positions []common.Vector3
	uvs       [][2]float32
	normals   [][3]float32

	mesh  *Mesh
	dedup map[objRef]uint32
	line  int
}

// LoadOBJ reads a Wavefront OBJ file. The mesh is named after the file.
//
// Parameters:
//   - path: the .obj file to read
//
// Returns:
//   - *Mesh: the triangulated mesh
//   - error: I/O errors, or errors wrapping ErrMalformedOBJ
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return mesh, nil
}

// ParseOBJ decodes the v, vt, vn and f records of a Wavefront OBJ stream. Faces with more
// than three corners are fan-triangulated. Corners may be written v, v/vt, v//vn or v/vt/vn,
// with negative indices counting back from the latest record. Other statements are skipped.
//
// Parameters:
//   - r: the OBJ text
//
// Returns:
//   - *Mesh: the triangulated mesh
//   - error: errors wrapping ErrMalformedOBJ with the offending line number
func ParseOBJ(r io.Reader) (*Mesh, error) {
	p := &objParser{
		mesh:  &Mesh{},
		dedup: make(map[objRef]uint32),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)
	for scanner.Scan() {
		p.line++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := p.statement(fields[0], fields[1:]); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read OBJ: %w", err)
	}

	p.mesh.Positions = p.positions
	return p.mesh, nil
}

func (p *objParser) statement(keyword string, args []string) error {
	switch keyword {
	case "v":
		xyz, err := p.floats(keyword, args, 3, 4)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, common.Vec3(xyz[0], xyz[1], xyz[2]))
	case "vt":
		uv, err := p.floats(keyword, args, 1, 3)
		if err != nil {
			return err
		}
		p.uvs = append(p.uvs, [2]float32{uv[0], uv[1]})
	case "vn":
		n, err := p.floats(keyword, args, 3, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, [3]float32{n[0], n[1], n[2]})
	case "f":
		return p.face(args)
	}
	return nil
}

// floats parses between min and max numbers; missing trailing values stay zero.
func (p *objParser) floats(keyword string, args []string, min, max int) ([4]float32, error) {
	var out [4]float32
	if len(args) < min || len(args) > max {
		return out, p.errorf("%s needs %d to %d values, got %d", keyword, min, max, len(args))
	}
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return out, p.errorf("%s value %q is not a number", keyword, a)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *objParser) face(args []string) error {
	if len(args) < 3 {
		return p.errorf("face needs at least 3 corners, got %d", len(args))
	}
	corners := make([]uint32, len(args))
	for i, a := range args {
		ref, err := p.corner(a)
		if err != nil {
			return err
		}
		corners[i] = p.vertex(ref)
	}
	for i := 1; i < len(corners)-1; i++ {
		p.mesh.Indices = append(p.mesh.Indices, corners[0], corners[i], corners[i+1])
	}
	return nil
}

func (p *objParser) corner(s string) (objRef, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return objRef{}, p.errorf("face corner %q has too many parts", s)
	}

	ref := objRef{v: -1, vt: -1, vn: -1}
	var err error
	if ref.v, err = p.index(parts[0], len(p.positions), "position"); err != nil {
		return ref, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if ref.vt, err = p.index(parts[1], len(p.uvs), "texcoord"); err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if ref.vn, err = p.index(parts[2], len(p.normals), "normal"); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// index resolves a 1-based or negative OBJ index against count records.
func (p *objParser) index(s string, count int, what string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf("%s index %q is not an integer", what, s)
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	}
	return 0, p.errorf("%s index %d out of range (%d defined)", what, i, count)
}

// vertex returns the index of the interleaved vertex for ref, adding it on first use.
func (p *objParser) vertex(ref objRef) uint32 {
	if idx, ok := p.dedup[ref]; ok {
		return idx
	}
	pos := p.positions[ref.v]
	v := Vertex{Position: pos.Array()}
	if ref.vt >= 0 {
		v.UV = p.uvs[ref.vt]
	}
	if ref.vn >= 0 {
		v.Normal = p.normals[ref.vn]
	}
	idx := uint32(len(p.mesh.Vertices))
	p.mesh.Vertices = append(p.mesh.Vertices, v)
	p.dedup[ref] = idx
	return idx
}

func (p *objParser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %w: %s", p.line, ErrMalformedOBJ, fmt.Sprintf(format, args...))
}
