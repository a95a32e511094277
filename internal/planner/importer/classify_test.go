package importer

import (
	"encoding/json"
	"testing"

	"building-control/internal/planner/models"
	"building-control/internal/planner/parser"

	"github.com/cheekybits/is"
)

func TestClassifierKind(t *testing.T) {
	is := is.New(t)

	c := NewClassifier(0.1)
	segment := []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}}
	open := []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	nearlyClosed := []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0.05, Y: 0}}

	is.Equal(c.Kind(segment, false), models.KindOuterWall)
	is.Equal(c.Kind(segment, true), models.KindOuterWall)
	is.Equal(c.Kind(open, false), models.KindInnerWall)
	is.Equal(c.Kind(open, true), models.KindRoom)
	is.Equal(c.Kind(nearlyClosed, false), models.KindRoom)

	// повторный вызов дает тот же ответ
	for i := 0; i < 3; i++ {
		is.Equal(c.Kind(open, false), models.KindInnerWall)
	}
}

func TestClassifierNamesPerKind(t *testing.T) {
	is := is.New(t)

	c := NewClassifier(0.1)
	ring := []models.Coordinate{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}

	r1 := c.Classify(parser.RawEntity{ID: "h1", Type: parser.EntityLWPolyline, Points: ring, Closed: true})
	w1 := c.Classify(parser.RawEntity{Type: parser.EntityLine, Points: ring[:2]})
	r2 := c.Classify(parser.RawEntity{Type: parser.EntityLWPolyline, Points: ring, Closed: true})

	is.Equal(r1.Name, "Room 1")
	is.Equal(w1.Name, "Outer Wall 1")
	is.Equal(r2.Name, "Room 2")
	is.Equal(r1.Properties["sourceId"], "h1")
	is.True(r1.ID != r2.ID)

	is.Equal(len(r1.Coordinates), 4)
	is.Equal(len(ring), 3)

	is.Equal(w1.Color, "#333")
	is.NotNil(w1.Thickness)
}

func TestClassifiedRoomSurvivesJSON(t *testing.T) {
	is := is.New(t)

	c := NewClassifier(0.1)
	square := []models.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	e := c.Classify(parser.RawEntity{Type: parser.EntityLWPolyline, Points: square, Closed: true})
	is.Equal(e.Kind, models.KindRoom)

	data, err := json.Marshal(e)
	is.NoErr(err)

	var back models.Element
	is.NoErr(json.Unmarshal(data, &back))
	is.Equal(back.Kind, models.KindRoom)
	is.Equal(len(back.Coordinates), 5)
	is.Equal(back.Coordinates[0], back.Coordinates[len(back.Coordinates)-1])

	// после загрузки флага замкнутости нет, кольцо узнается по координатам
	is.Equal(c.Kind(back.Coordinates, false), models.KindRoom)
}
