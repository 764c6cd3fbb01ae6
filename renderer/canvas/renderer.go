package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/conformal/mesh"
	"github.com/ByLCY/conformal/renderer"
)

// Renderer draws the UV layout of a flattened mesh via github.com/tdewolff/canvas.
type Renderer struct {
	opts Options
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the page. All lengths are millimetres.
type Options struct {
	Size   float64
	Margin float64
	Stroke float64
	Title  string
}

var (
	edgeColor = canvas.Hex("#1f4e79")
	pinColor  = canvas.Hex("#d62728")
)

// NewRenderer creates a renderer drawing onto a Size x Size page.
func NewRenderer(opts Options) *Renderer {
	if opts.Size <= 0 {
		opts.Size = 200
	}
	if opts.Margin < 0 || 2*opts.Margin >= opts.Size {
		opts.Margin = 0
	}
	if opts.Stroke <= 0 {
		opts.Stroke = 0.2
	}
	return &Renderer{opts: opts}
}

// Render renders the UV layout into a PDF byte slice.
func (r *Renderer) Render(m *mesh.Mesh) ([]byte, error) {
	if m.NumVertices() == 0 {
		return nil, fmt.Errorf("网格为空，无法生成预览")
	}

	size := r.opts.Size
	place := r.fit(m)

	var buf bytes.Buffer
	writer := pdf.New(&buf, size, size, nil)
	writer.SetInfo(r.opts.Title, "UV layout", "", "", "conformal")

	c := canvas.New(size, size)
	ctx := canvas.NewContext(c)

	// 背景
	ctx.SetFillColor(canvas.White)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.DrawPath(0, 0, canvas.Rectangle(size, size))

	r.drawFaces(ctx, m, place)
	r.drawPins(ctx, m, place)

	c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// fit 返回把 UV 坐标映射到页面坐标（mm）的函数，保持长宽比并居中。
func (r *Renderer) fit(m *mesh.Mesh) func(uv [2]float64) (float64, float64) {
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	for _, v := range m.Vertices {
		minU, maxU = math.Min(minU, v.UV[0]), math.Max(maxU, v.UV[0])
		minV, maxV = math.Min(minV, v.UV[1]), math.Max(maxV, v.UV[1])
	}
	avail := r.opts.Size - 2*r.opts.Margin
	extent := math.Max(maxU-minU, maxV-minV)
	scale := 1.0
	if extent > 0 {
		scale = avail / extent
	}
	offU := r.opts.Margin + (avail-(maxU-minU)*scale)/2
	offV := r.opts.Margin + (avail-(maxV-minV)*scale)/2
	return func(uv [2]float64) (float64, float64) {
		return offU + (uv[0]-minU)*scale, offV + (uv[1]-minV)*scale
	}
}

// drawFaces 绘制每个面的轮廓
func (r *Renderer) drawFaces(ctx *canvas.Context, m *mesh.Mesh, place func([2]float64) (float64, float64)) {
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(edgeColor)
	ctx.SetStrokeWidth(r.opts.Stroke)
	for _, f := range m.Faces {
		if len(f) < 2 {
			continue
		}
		p := &canvas.Path{}
		for i, idx := range f {
			if idx < 0 || idx >= len(m.Vertices) {
				p = nil
				break
			}
			x, y := place(m.Vertices[idx].UV)
			if i == 0 {
				p.MoveTo(x, y)
			} else {
				p.LineTo(x, y)
			}
		}
		if p == nil {
			continue
		}
		p.Close()
		ctx.DrawPath(0, 0, p)
	}
}

// drawPins 用实心圆标记固定顶点
func (r *Renderer) drawPins(ctx *canvas.Context, m *mesh.Mesh, place func([2]float64) (float64, float64)) {
	radius := 4 * r.opts.Stroke
	ctx.SetFillColor(pinColor)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	for _, i := range m.FixedIndices() {
		x, y := place(m.Vertices[i].UV)
		ctx.DrawPath(x, y, canvas.Circle(radius))
	}
}
