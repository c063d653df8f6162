// Package loaders reads finite-element meshes from disk into snapshots.
//
// The ASCII mesh format is line oriented. Blank lines and lines starting
// with '#' are ignored. Sections:
//
//	kind hex8|wedge6|tet4
//	layout nodal|element
//	vertices <count>
//	  x y z                      (count lines)
//	elements <count>
//	  id id ...                  (count lines, NodesPerElement ids each)
//	values <count>
//	  v                          (count lines)
package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dcross/go-femvis/pkg/core"
	"github.com/dcross/go-femvis/pkg/mesh"
)

// LoadMesh loads an ASCII mesh file and builds a snapshot from it
func LoadMesh(filename string) (*mesh.Snapshot, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer file.Close()

	snap, err := ParseMesh(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return snap, nil
}

// ParseMesh parses the ASCII mesh format from a reader
func ParseMesh(r io.Reader) (*mesh.Snapshot, error) {
	p := &meshParser{scanner: bufio.NewScanner(r)}

	kind, err := p.parseKind()
	if err != nil {
		return nil, err
	}
	layout, err := p.parseLayout()
	if err != nil {
		return nil, err
	}
	vertices, err := p.parseVertices()
	if err != nil {
		return nil, err
	}
	connectivity, err := p.parseElements(kind)
	if err != nil {
		return nil, err
	}
	values, err := p.parseValues()
	if err != nil {
		return nil, err
	}

	snap, err := mesh.NewSnapshot(kind, layout, vertices, connectivity, values)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}
	return snap, nil
}

type meshParser struct {
	scanner *bufio.Scanner
	line    int
}

// nextFields returns the whitespace-split fields of the next
// non-blank, non-comment line
func (p *meshParser) nextFields() ([]string, error) {
	for p.scanner.Scan() {
		p.line++
		text := strings.TrimSpace(p.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		return strings.Fields(text), nil
	}
	if err := p.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("line %d: unexpected end of file", p.line)
}

// sectionCount reads a "<keyword> <count>" header line
func (p *meshParser) sectionCount(keyword string) (int, error) {
	fields, err := p.nextFields()
	if err != nil {
		return 0, err
	}
	if len(fields) != 2 || fields[0] != keyword {
		return 0, fmt.Errorf("line %d: expected %q section header, got %q", p.line, keyword, strings.Join(fields, " "))
	}
	count, err := strconv.Atoi(fields[1])
	if err != nil || count <= 0 {
		return 0, fmt.Errorf("line %d: invalid %s count %q", p.line, keyword, fields[1])
	}
	return count, nil
}

func (p *meshParser) parseKind() (mesh.ElementKind, error) {
	fields, err := p.nextFields()
	if err != nil {
		return 0, err
	}
	if len(fields) != 2 || fields[0] != "kind" {
		return 0, fmt.Errorf("line %d: expected \"kind\" header", p.line)
	}
	switch fields[1] {
	case "hex8":
		return mesh.Hex8, nil
	case "wedge6":
		return mesh.Wedge6, nil
	case "tet4":
		return mesh.Tet4, nil
	default:
		return 0, fmt.Errorf("line %d: unknown element kind %q", p.line, fields[1])
	}
}

func (p *meshParser) parseLayout() (mesh.FieldLayout, error) {
	fields, err := p.nextFields()
	if err != nil {
		return 0, err
	}
	if len(fields) != 2 || fields[0] != "layout" {
		return 0, fmt.Errorf("line %d: expected \"layout\" header", p.line)
	}
	switch fields[1] {
	case "nodal":
		return mesh.NodalField, nil
	case "element":
		return mesh.ElementField, nil
	default:
		return 0, fmt.Errorf("line %d: unknown field layout %q", p.line, fields[1])
	}
}

func (p *meshParser) parseVertices() ([]core.Vec3, error) {
	count, err := p.sectionCount("vertices")
	if err != nil {
		return nil, err
	}

	vertices := make([]core.Vec3, 0, count)
	for i := 0; i < count; i++ {
		fields, err := p.nextFields()
		if err != nil {
			return nil, err
		}
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 coordinates, got %d", p.line, len(fields))
		}
		var coords [3]float64
		for c, field := range fields {
			coords[c], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid coordinate %q", p.line, field)
			}
		}
		vertices = append(vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}
	return vertices, nil
}

func (p *meshParser) parseElements(kind mesh.ElementKind) ([]int32, error) {
	count, err := p.sectionCount("elements")
	if err != nil {
		return nil, err
	}

	nodesPerElement := kind.NodesPerElement()
	connectivity := make([]int32, 0, count*nodesPerElement)
	for i := 0; i < count; i++ {
		fields, err := p.nextFields()
		if err != nil {
			return nil, err
		}
		if len(fields) != nodesPerElement {
			return nil, fmt.Errorf("line %d: expected %d node ids for %s element, got %d",
				p.line, nodesPerElement, kind, len(fields))
		}
		for _, field := range fields {
			id, err := strconv.ParseInt(field, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex id %q", p.line, field)
			}
			connectivity = append(connectivity, int32(id))
		}
	}
	return connectivity, nil
}

func (p *meshParser) parseValues() ([]float64, error) {
	count, err := p.sectionCount("values")
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		fields, err := p.nextFields()
		if err != nil {
			return nil, err
		}
		if len(fields) != 1 {
			return nil, fmt.Errorf("line %d: expected 1 field value, got %d", p.line, len(fields))
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid field value %q", p.line, fields[0])
		}
		values = append(values, v)
	}
	return values, nil
}
