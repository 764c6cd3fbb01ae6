package mesh

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteOBJ writes m to path as OBJ with one texture coordinate per vertex.
// The file is only created once the whole mesh has been encoded.
func WriteOBJ(m *Mesh, path string) error {
	var buf bytes.Buffer
	if err := EncodeOBJ(&buf, m); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write mesh file %s: %w", path, err)
	}
	return nil
}

// EncodeOBJ serializes m. The output depends only on the mesh contents.
func EncodeOBJ(w io.Writer, m *Mesh) error {
	if m == nil {
		return fmt.Errorf("mesh is nil")
	}
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.Position.X), formatFloat(v.Position.Y), formatFloat(v.Position.Z))
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "vt %s %s\n", formatFloat(v.UV[0]), formatFloat(v.UV[1]))
	}
	for fi, f := range m.Faces {
		bw.WriteString("f")
		for _, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				return fmt.Errorf("face %d references vertex %d: %w", fi, idx, ErrIndexOutOfRange)
			}
			ref := strconv.Itoa(idx + 1)
			bw.WriteString(" " + ref + "/" + ref)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
