package response_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/response"
)

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, []string{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":200,"data":[]}`, rec.Body.String())
}

func TestWrite_UnencodableBodyIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]float64{"price": math.NaN()})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, "Internal server error", env.Message)
}
