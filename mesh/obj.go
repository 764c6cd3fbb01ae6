package mesh

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	objLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Continuation", Pattern: `\\\r?\n`},
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Number", Pattern: `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`},
		{Name: "Slash", Pattern: `/`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.\-]*`},
		{Name: "Other", Pattern: `[^\s#/]+`},
	})

	objParser = participle.MustBuild[objFile](
		participle.Lexer(objLexer),
		participle.Elide("Whitespace", "Comment", "Continuation"),
	)
)

// objFile is the root of a Wavefront OBJ document.
type objFile struct {
	Lines []*objLine `parser:"( @@ | Newline )*"`
}

// objLine is one statement. Only geometry and faces are interpreted; every
// other keyword (o, g, s, usemtl, mtllib, l, ...) is accepted and dropped.
type objLine struct {
	Vertex   *objVertex `parser:"  @@"`
	TexCoord *objAttr   `parser:"| 'vt' @@"`
	Normal   *objAttr   `parser:"| 'vn' @@"`
	Face     *objFace   `parser:"| @@"`
	Other    *objOther  `parser:"| @@"`
}

type objVertex struct {
	Pos    lexer.Position `parser:""`
	Coords []string       `parser:"'v' @Number @Number @Number @Number*"`
}

type objAttr struct {
	Values []string `parser:"@Number+"`
}

type objFace struct {
	Pos  lexer.Position `parser:""`
	Refs []*objFaceRef  `parser:"'f' @@+"`
}

// objFaceRef keeps the raw v[/vt][/vn] token run; decoded by vertexIndex.
type objFaceRef struct {
	Parts []string `parser:"@Number ( @Slash @Number? )*"`
}

type objOther struct {
	Keyword string `parser:"@Ident ( Ident | Number | Slash | Other )*"`
}

// LoadOBJ reads a Wavefront OBJ file from path.
func LoadOBJ(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open mesh file %s: %w", path, err)
	}
	defer file.Close()

	m, err := parseOBJ(path, file)
	if err != nil {
		return nil, fmt.Errorf("cannot read mesh file %s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ reads OBJ content from r.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	return parseOBJ("", r)
}

func parseOBJ(filename string, r io.Reader) (*Mesh, error) {
	doc, err := objParser.Parse(filename, r)
	if err != nil {
		return nil, err
	}

	m := &Mesh{}
	for _, line := range doc.Lines {
		switch {
		case line.Vertex != nil:
			var pos [3]float64
			for i := range pos {
				v, err := strconv.ParseFloat(line.Vertex.Coords[i], 64)
				if err != nil {
					return nil, fmt.Errorf("%s: invalid vertex coordinate %q: %w", line.Vertex.Pos, line.Vertex.Coords[i], err)
				}
				pos[i] = v
			}
			m.Vertices = append(m.Vertices, Vertex{Position: r3.Vec{X: pos[0], Y: pos[1], Z: pos[2]}})
		case line.Face != nil:
			face := make(Face, 0, len(line.Face.Refs))
			for _, ref := range line.Face.Refs {
				idx, err := ref.vertexIndex(len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("%s: %w", line.Face.Pos, err)
				}
				face = append(face, idx)
			}
			m.Faces = append(m.Faces, face)
		}
	}
	return m, nil
}

// vertexIndex resolves the 1-based (or negative, relative) OBJ index against
// the n vertices declared so far and returns it zero-based.
func (r *objFaceRef) vertexIndex(n int) (int, error) {
	raw := strings.Split(strings.Join(r.Parts, ""), "/")[0]
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q: %w", raw, err)
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	default:
		return 0, fmt.Errorf("face index %d with %d vertices: %w", i, n, ErrIndexOutOfRange)
	}
}
