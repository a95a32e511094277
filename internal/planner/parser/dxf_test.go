package parser

import (
	"strings"
	"testing"

	"building-control/internal/planner/models"

	"github.com/cheekybits/is"
)

func dxf(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestParseDXFLineAndPolyline(t *testing.T) {
	is := is.New(t)

	src := dxf(
		"0", "SECTION",
		"2", "HEADER",
		"0", "ENDSEC",
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE",
		"5", "1A",
		"10", "0.0",
		"20", "0.0",
		"30", "0.0",
		"11", "10.0",
		"21", "0.0",
		"31", "0.0",
		"0", "LWPOLYLINE",
		"5", "2B",
		"90", "4",
		"70", "1",
		"10", "0", "20", "0",
		"10", "4", "20", "0",
		"10", "4", "20", "3",
		"10", "0", "20", "3",
		"0", "CIRCLE",
		"10", "5", "20", "5",
		"40", "1",
		"0", "ENDSEC",
		"0", "EOF",
	)

	entities, err := ParseDXF(strings.NewReader(src))
	is.NoErr(err)
	is.Equal(len(entities), 3)

	line := entities[0]
	is.Equal(line.Type, EntityLine)
	is.Equal(line.ID, "1A")
	is.Equal(line.Points, []models.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}})
	is.True(line.Recognized())

	poly := entities[1]
	is.Equal(poly.Type, EntityLWPolyline)
	is.True(poly.Closed)
	is.Equal(len(poly.Points), 4)
	is.Equal(poly.Points[2], models.Coordinate{X: 4, Y: 3})

	is.Equal(entities[2].Type, "CIRCLE")
	is.False(entities[2].Recognized())
}

func TestParseDXFPolylineVertices(t *testing.T) {
	is := is.New(t)

	src := dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "POLYLINE",
		"5", "P1",
		"66", "1",
		"10", "0", "20", "0",
		"70", "0",
		"0", "VERTEX",
		"10", "1", "20", "1",
		"0", "VERTEX",
		"10", "2", "20", "1",
		"0", "VERTEX",
		"10", "2", "20", "5",
		"0", "SEQEND",
		"0", "POLYLINE",
		"70", "1",
		"0", "VERTEX",
		"10", "7", "20", "7",
		"0", "ENDSEC",
	)

	entities, err := ParseDXF(strings.NewReader(src))
	is.NoErr(err)
	is.Equal(len(entities), 2)

	first := entities[0]
	is.Equal(first.Type, EntityPolyline)
	is.Equal(first.ID, "P1")
	is.False(first.Closed)
	is.Equal(first.Points, []models.Coordinate{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 5}})

	// POLYLINE без SEQEND закрывается концом секции
	second := entities[1]
	is.True(second.Closed)
	is.Equal(second.Points, []models.Coordinate{{X: 7, Y: 7}})
}

func TestParseDXFErrors(t *testing.T) {
	is := is.New(t)

	_, err := ParseDXF(strings.NewReader(dxf("0", "SECTION", "2", "HEADER", "0", "ENDSEC")))
	is.Equal(err, ErrNoEntities)

	_, err = ParseDXF(strings.NewReader(dxf("0", "SECTION", "2")))
	is.NotNil(err)

	_, err = ParseDXF(strings.NewReader(dxf("x", "SECTION")))
	is.NotNil(err)

	_, err = ParseDXF(strings.NewReader(dxf(
		"0", "SECTION",
		"2", "ENTITIES",
		"0", "LINE",
		"10", "abc",
		"0", "ENDSEC",
	)))
	is.NotNil(err)
}

func TestParseDXFEmptyEntities(t *testing.T) {
	is := is.New(t)

	entities, err := ParseDXF(strings.NewReader(dxf("0", "SECTION", "2", "ENTITIES", "0", "ENDSEC", "0", "EOF")))
	is.NoErr(err)
	is.Equal(len(entities), 0)
}
