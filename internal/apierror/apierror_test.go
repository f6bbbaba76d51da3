package apierror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStringMessage(t *testing.T) {
	body := []byte(`{"statusCode":400,"message":"Ya existe una caja abierta","error":"Bad Request"}`)
	e := Decode(400, body)

	assert.Equal(t, 400, e.StatusCode)
	assert.Equal(t, "Bad Request", e.Kind)
	require.Len(t, e.Messages, 1)
	assert.Equal(t, "Ya existe una caja abierta", e.First(""))
}

func TestDecodeArrayMessage(t *testing.T) {
	body := []byte(`{"statusCode":400,"message":["stock insuficiente","precio inválido"],"error":"Bad Request"}`)
	e := Decode(400, body)

	require.Len(t, e.Messages, 2)
	assert.Equal(t, "stock insuficiente", e.First(""))
	assert.Equal(t, "api error 400: stock insuficiente", e.Error())
}

func TestDecodeUnexpectedBody(t *testing.T) {
	e := Decode(502, []byte(`<html>bad gateway</html>`))

	assert.Equal(t, 502, e.StatusCode)
	assert.Empty(t, e.Messages)
	assert.Equal(t, "fallo de conexión", e.First("fallo de conexión"))
	assert.Equal(t, "api error 502", e.Error())
}

func TestDecodeEmptyBody(t *testing.T) {
	e := Decode(500, nil)
	assert.Equal(t, 500, e.StatusCode)
	assert.Equal(t, "api error 500", e.Error())
}

func TestFirstMessageUnwraps(t *testing.T) {
	inner := Decode(400, []byte(`{"statusCode":400,"message":"stock insuficiente"}`))
	wrapped := fmt.Errorf("submit sale: %w", inner)

	assert.Equal(t, "stock insuficiente", FirstMessage(wrapped, "error desconocido"))
	assert.Equal(t, "error desconocido", FirstMessage(errors.New("timeout"), "error desconocido"))
}
