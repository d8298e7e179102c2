package respond

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, http.StatusUnauthorized, "Token inválido")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Token inválido"}`, rr.Body.String())
}

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusOK, map[string]any{"mensaje": "ok", "id": "1"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"mensaje":"ok","id":"1"}`, rr.Body.String())
}
