package models

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/cheekybits/is"
)

func TestCoordinateJSON(t *testing.T) {
	is := is.New(t)

	data, err := json.Marshal(Coordinate{X: 1.5, Y: -2})
	is.NoErr(err)
	is.Equal(string(data), "[1.5,-2]")

	var c Coordinate
	is.NoErr(json.Unmarshal([]byte("[3,4]"), &c))
	is.Equal(c, Coordinate{X: 3, Y: 4})

	is.NotNil(json.Unmarshal([]byte("[3]"), &c))
	is.NotNil(json.Unmarshal([]byte(`{"x":1}`), &c))
}

func TestCoordinateFinite(t *testing.T) {
	is := is.New(t)

	is.True(Coordinate{X: 1, Y: 2}.Finite())
	is.False(Coordinate{X: math.NaN(), Y: 2}.Finite())
	is.False(Coordinate{X: 1, Y: math.Inf(-1)}.Finite())
	is.Equal(Coordinate{X: 0, Y: 0}.Distance(Coordinate{X: 3, Y: 4}), 5.0)
}

func TestParseKind(t *testing.T) {
	is := is.New(t)

	k, err := ParseKind("raf")
	is.NoErr(err)
	is.Equal(k, KindShelf)

	k, err = ParseKind(" Room ")
	is.NoErr(err)
	is.Equal(k, KindRoom)

	_, err = ParseKind("table")
	is.True(errors.Is(err, ErrUnknownKind))
}

func TestKindGroups(t *testing.T) {
	is := is.New(t)

	for _, k := range Kinds {
		is.True(k.Valid())
		groups := 0
		if k.IsPoint() {
			groups++
		}
		if k.IsRing() {
			groups++
		}
		if k.IsPath() {
			groups++
		}
		is.Equal(groups, 1)
	}
	is.False(ElementKind("table").Valid())
}

func TestElementJSONLegacyKind(t *testing.T) {
	is := is.New(t)

	var e Element
	is.NoErr(json.Unmarshal([]byte(`{"id":"a","type":"raf","coordinates":[[0,0],[1,0],[1,1]]}`), &e))
	is.Equal(e.Kind, KindShelf)
	is.Equal(len(e.Coordinates), 3)

	is.NotNil(json.Unmarshal([]byte(`{"id":"a","type":"sofa","coordinates":[]}`), &e))
}

func TestCloseRing(t *testing.T) {
	is := is.New(t)

	room := Element{Kind: KindRoom, Coordinates: []Coordinate{{0, 0}, {1, 0}, {1, 1}}}
	room.CloseRing()
	is.Equal(len(room.Coordinates), 4)
	is.Equal(room.Coordinates[3], Coordinate{0, 0})

	room.CloseRing()
	is.Equal(len(room.Coordinates), 4)

	wall := Element{Kind: KindInnerWall, Coordinates: []Coordinate{{0, 0}, {1, 0}, {1, 1}}}
	wall.CloseRing()
	is.Equal(len(wall.Coordinates), 3)
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	cases := []struct {
		name string
		e    Element
		ok   bool
	}{
		{"product", Element{Kind: KindProduct, Coordinates: []Coordinate{{1, 1}}}, true},
		{"product with two points", Element{Kind: KindProduct, Coordinates: []Coordinate{{1, 1}, {2, 2}}}, false},
		{"room", Element{Kind: KindRoom, Coordinates: []Coordinate{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}, true},
		{"room with two vertices", Element{Kind: KindRoom, Coordinates: []Coordinate{{0, 0}, {1, 0}, {0, 0}}}, false},
		{"wall", Element{Kind: KindOuterWall, Coordinates: []Coordinate{{0, 0}, {1, 0}}}, true},
		{"wall with one point", Element{Kind: KindDoor, Coordinates: []Coordinate{{0, 0}}}, false},
		{"nan", Element{Kind: KindWindow, Coordinates: []Coordinate{{0, 0}, {math.NaN(), 0}}}, false},
	}
	for _, tc := range cases {
		err := tc.e.Validate()
		if tc.ok {
			is.NoErr(err)
			continue
		}
		if !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("%s: expected ErrInvalidGeometry, got %v", tc.name, err)
		}
	}

	err := Element{Kind: "sofa"}.Validate()
	is.True(errors.Is(err, ErrUnknownKind))
}

func TestApplyDefaultStyle(t *testing.T) {
	is := is.New(t)

	wall := Element{Kind: KindOuterWall}
	wall.ApplyDefaultStyle()
	is.Equal(wall.Color, "#333")
	is.NotNil(wall.Thickness)
	is.Equal(*wall.Thickness, 5.0)

	room := Element{Kind: KindRoom, Color: "red"}
	room.ApplyDefaultStyle()
	is.Equal(room.Color, "red")
	is.Nil(room.Thickness)

	is.Equal(DisplayName(KindRoom, 3), "Room 3")
}

func TestBuildingCloneIsDeep(t *testing.T) {
	is := is.New(t)

	thickness := 2.0
	b := Building{
		ID: "b",
		Floors: []FloorPlan{{
			Level: "1",
			Scale: 1,
			Elements: []Element{{
				ID:          "e",
				Kind:        KindInnerWall,
				Coordinates: []Coordinate{{0, 0}, {1, 1}},
				Thickness:   &thickness,
				Properties:  map[string]any{"k": "v"},
			}},
		}},
	}

	cp := b.Clone()
	cp.Floors[0].Elements[0].Coordinates[0] = Coordinate{9, 9}
	*cp.Floors[0].Elements[0].Thickness = 7
	cp.Floors[0].Elements[0].Properties["k"] = "changed"
	cp.Floors[0].Level = "2"

	is.Equal(b.Floors[0].Level, "1")
	is.Equal(b.Floors[0].Elements[0].Coordinates[0], Coordinate{0, 0})
	is.Equal(*b.Floors[0].Elements[0].Thickness, 2.0)
	is.Equal(b.Floors[0].Elements[0].Properties["k"], "v")
}

func TestElementCloneNestedProperties(t *testing.T) {
	is := is.New(t)

	e := Element{
		ID:   "p",
		Kind: KindProduct,
		Properties: map[string]any{
			"meta": map[string]any{"quantity": 5.0},
			"tags": []any{"fresh", map[string]any{"shelf": "A"}},
		},
	}

	cp := e.Clone()
	cp.Properties["meta"].(map[string]any)["quantity"] = 999.0
	cp.Properties["tags"].([]any)[0] = "stale"
	cp.Properties["tags"].([]any)[1].(map[string]any)["shelf"] = "B"

	is.Equal(e.Properties["meta"].(map[string]any)["quantity"], 5.0)
	is.Equal(e.Properties["tags"].([]any)[0], "fresh")
	is.Equal(e.Properties["tags"].([]any)[1].(map[string]any)["shelf"], "A")
}
