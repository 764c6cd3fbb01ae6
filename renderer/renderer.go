package renderer

import "github.com/ByLCY/conformal/mesh"

// Renderer 将展开后的网格输出为预览文件，例如 PDF。
// Render 返回生成的二进制数据（例如 PDF 字节切片）以及可能的错误。
type Renderer interface {
	Render(m *mesh.Mesh) ([]byte, error)
}
