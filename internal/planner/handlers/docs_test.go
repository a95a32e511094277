package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cheekybits/is"
	"github.com/gofiber/fiber/v3"
	"gopkg.in/yaml.v3"
)

func TestDocs(t *testing.T) {
	is := is.New(t)

	app := fiber.New()
	RegisterDocs(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	is.NoErr(err)
	is.Equal(resp.StatusCode, http.StatusOK)
	data, err := io.ReadAll(resp.Body)
	is.NoErr(err)
	resp.Body.Close()

	var doc struct {
		Paths map[string]any `yaml:"paths"`
	}
	is.NoErr(yaml.Unmarshal(data, &doc))
	_, ok := doc.Paths["/buildings/{id}/floors/import"]
	is.True(ok)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil))
	is.NoErr(err)
	is.Equal(resp.StatusCode, http.StatusOK)
	resp.Body.Close()
}
