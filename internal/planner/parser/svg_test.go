package parser

import (
	"strings"
	"testing"

	"building-control/internal/planner/models"

	"github.com/cheekybits/is"
)

const planSVG = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100">
  <rect id="hall" x="10" y="20" width="30" height="40"/>
  <line id="w1" x1="0" y1="0" x2="100" y2="0"/>
  <g id="layer">
    <polyline id="pl" points="0,0 5,0 5,5"/>
    <g>
      <polygon id="pg" points="1 1 2 1 2 2"/>
    </g>
  </g>
  <path id="p" d="M 0 0 L 10 0 L 10 10 Z"/>
</svg>`

func TestParseSVG(t *testing.T) {
	is := is.New(t)

	entities, err := ParseSVG(strings.NewReader(planSVG))
	is.NoErr(err)
	is.Equal(len(entities), 5)

	byID := map[string]RawEntity{}
	for _, e := range entities {
		byID[e.ID] = e
	}

	rect := byID["hall"]
	is.Equal(rect.Type, EntityLWPolyline)
	is.True(rect.Closed)
	is.Equal(rect.Points, []models.Coordinate{{X: 10, Y: 20}, {X: 40, Y: 20}, {X: 40, Y: 60}, {X: 10, Y: 60}})

	line := byID["w1"]
	is.Equal(line.Type, EntityLine)
	is.Equal(len(line.Points), 2)

	pl := byID["pl"]
	is.False(pl.Closed)
	is.Equal(len(pl.Points), 3)

	pg := byID["pg"]
	is.True(pg.Closed)
	is.Equal(pg.Points[1], models.Coordinate{X: 2, Y: 1})

	path := byID["p"]
	is.True(path.Closed)
	is.Equal(len(path.Points), 3)
}

func TestParseSVGErrors(t *testing.T) {
	is := is.New(t)

	_, err := ParseSVG(strings.NewReader("<svg><rect"))
	is.NotNil(err)

	_, err = ParseSVG(strings.NewReader(`<svg><polyline points="0,0 5"/></svg>`))
	is.NotNil(err)

	_, err = ParseSVG(strings.NewReader(`<svg><path d="M 0 0 L x 1"/></svg>`))
	is.NotNil(err)
}

func TestParseSVGPathSubpaths(t *testing.T) {
	is := is.New(t)

	entities, err := ParseSVG(strings.NewReader(`<svg><path id="mix" d="M0 0 L10 0 L10 10 Z M20 20 L30 20"/></svg>`))
	is.NoErr(err)
	is.Equal(len(entities), 2)

	is.Equal(entities[0].ID, "mix")
	is.True(entities[0].Closed)
	is.Equal(len(entities[0].Points), 3)

	is.Equal(entities[1].ID, "mix#2")
	is.False(entities[1].Closed)
	is.Equal(entities[1].Points, []models.Coordinate{{X: 20, Y: 20}, {X: 30, Y: 20}})
}
