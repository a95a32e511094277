package geometry

import (
	"math"

	"building-control/internal/planner/models"
)

// ============================================================
// Options
// ============================================================

// Options: допуски импорта. Все значения в единицах холста.
type Options struct {
	TargetSize     float64 `yaml:"target_size"`
	MinLength      float64 `yaml:"min_length"`
	MinArea        float64 `yaml:"min_area"`
	ClosureEpsilon float64 `yaml:"closure_epsilon"`
}

func DefaultOptions() Options {
	return Options{
		TargetSize:     10,
		MinLength:      0.01,
		MinArea:        0.01,
		ClosureEpsilon: 0.1,
	}
}

// WithDefaults подставляет значения по умолчанию вместо неположительных.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.TargetSize <= 0 {
		o.TargetSize = def.TargetSize
	}
	if o.MinLength <= 0 {
		o.MinLength = def.MinLength
	}
	if o.MinArea <= 0 {
		o.MinArea = def.MinArea
	}
	if o.ClosureEpsilon <= 0 {
		o.ClosureEpsilon = def.ClosureEpsilon
	}
	return o
}

// ============================================================
// Bounding box
// ============================================================

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// DefaultBounds используется, когда в чертеже нет ни одной конечной точки.
var DefaultBounds = BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Bounds считает габариты по конечным координатам. ok=false, если таких нет.
func Bounds(chains [][]models.Coordinate) (BBox, bool) {
	b := BBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
	found := false
	for _, chain := range chains {
		for _, c := range chain {
			if !c.Finite() {
				continue
			}
			found = true
			b.MinX = math.Min(b.MinX, c.X)
			b.MinY = math.Min(b.MinY, c.Y)
			b.MaxX = math.Max(b.MaxX, c.X)
			b.MaxY = math.Max(b.MaxY, c.Y)
		}
	}
	if !found {
		return DefaultBounds, false
	}
	return b, true
}

// ============================================================
// Transform
// ============================================================

// Transform центрирует чертеж на холсте targetSize x targetSize
// с сохранением пропорций.
type Transform struct {
	Scale   float64
	CenterX float64
	CenterY float64
	Half    float64
}

// Fit подбирает масштаб min(target/width, target/height). Нулевая
// протяженность заменяется единицей.
func Fit(b BBox, targetSize float64) Transform {
	width := b.Width()
	if width == 0 {
		width = 1
	}
	height := b.Height()
	if height == 0 {
		height = 1
	}

	return Transform{
		Scale:   math.Min(targetSize/width, targetSize/height),
		CenterX: b.MinX + b.Width()/2,
		CenterY: b.MinY + b.Height()/2,
		Half:    targetSize / 2,
	}
}

func (t Transform) Apply(c models.Coordinate) models.Coordinate {
	return models.Coordinate{
		X: (c.X-t.CenterX)*t.Scale + t.Half,
		Y: (c.Y-t.CenterY)*t.Scale + t.Half,
	}
}

// ApplyAll переводит цепочку на холст, отбрасывая неконечные точки.
func (t Transform) ApplyAll(chain []models.Coordinate) []models.Coordinate {
	out := make([]models.Coordinate, 0, len(chain))
	for _, c := range chain {
		if !c.Finite() {
			continue
		}
		out = append(out, t.Apply(c))
	}
	return out
}
