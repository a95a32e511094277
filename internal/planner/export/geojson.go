package export

import (
	"fmt"

	"building-control/internal/planner/geometry"
	"building-control/internal/planner/models"

	geojson "github.com/paulmach/go.geojson"
)

// ============================================================
// GeoJSON export
// ============================================================

// FloorGeoJSON переводит этаж в FeatureCollection. Товары становятся
// Point, контуры Polygon, остальное LineString.
func FloorGeoJSON(floor models.FloorPlan) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, e := range floor.Elements {
		f := ElementFeature(e)
		if f == nil {
			continue
		}
		fc.AddFeature(f)
	}
	return fc
}

// ElementFeature возвращает nil для элементов без координат.
func ElementFeature(e models.Element) *geojson.Feature {
	if len(e.Coordinates) == 0 {
		return nil
	}

	var f *geojson.Feature
	switch {
	case e.Kind.IsPoint():
		c := e.Coordinates[0]
		f = geojson.NewPointFeature([]float64{c.X, c.Y})
	case e.Kind.IsRing():
		ring := toPositions(e.Coordinates)
		if first, last := e.Coordinates[0], e.Coordinates[len(e.Coordinates)-1]; first != last {
			ring = append(ring, []float64{first.X, first.Y})
		}
		f = geojson.NewPolygonFeature([][][]float64{ring})
	default:
		f = geojson.NewLineStringFeature(toPositions(e.Coordinates))
	}

	f.ID = e.ID
	f.SetProperty("kind", string(e.Kind))
	if e.Name != "" {
		f.SetProperty("name", e.Name)
	}
	if e.Color != "" {
		f.SetProperty("color", e.Color)
	}
	if e.Thickness != nil {
		f.SetProperty("thickness", *e.Thickness)
	}

	m := geometry.Measure(e)
	if m.Type != geometry.MeasurePoint {
		f.SetProperty(string(m.Type), m.Value)
		f.SetProperty("display", m.String())
	}
	for k, v := range e.Properties {
		if _, taken := f.Properties[k]; !taken {
			f.SetProperty(k, v)
		}
	}
	return f
}

// MarshalFloor: сериализованная FeatureCollection этажа.
func MarshalFloor(floor models.FloorPlan) ([]byte, error) {
	data, err := FloorGeoJSON(floor).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return data, nil
}

func toPositions(coords []models.Coordinate) [][]float64 {
	out := make([][]float64, 0, len(coords))
	for _, c := range coords {
		out = append(out, []float64{c.X, c.Y})
	}
	return out
}
