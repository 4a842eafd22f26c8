package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sin docs/swagger.json el middleware no se registra (nil) y el arranque
// no hace panic en un checkout limpio.
func TestSwaggerMiddleware_SpecAusente(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "docs", "swagger.json")

	var mw fiber.Handler
	require.NotPanics(t, func() {
		mw = swaggerMiddleware(missing, "PosBuzz API")
	})
	assert.Nil(t, mw)
}

// Con el spec presente el middleware se construye normalmente.
func TestSwaggerMiddleware_SpecPresente(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "swagger.json")
	minimal := `{"swagger":"2.0","info":{"title":"PosBuzz API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(spec, []byte(minimal), 0o644))

	mw := swaggerMiddleware(spec, "PosBuzz API")
	assert.NotNil(t, mw)
}
