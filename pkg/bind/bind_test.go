package bind_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog/pkg/bind"
)

func TestJSON_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nmae":"typo"}`))
	var dest struct {
		Name string `json:"name"`
	}
	err := bind.JSON(req, &dest, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var dest map[string]any
	err := bind.JSON(req, &dest, 0)
	require.Error(t, err)
	assert.Equal(t, "request body is empty", err.Error())
}

func newMultipart(t *testing.T) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Atlas"))
	fw, err := mw.CreateFormFile("image", "atlas.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMultipart(t *testing.T) {
	req := newMultipart(t)
	require.True(t, bind.IsMultipart(req))
	require.NoError(t, bind.Multipart(req, 1<<20))

	name, ok := bind.FormValue(req, "name")
	assert.True(t, ok)
	assert.Equal(t, "Atlas", name)

	_, ok = bind.FormValue(req, "price")
	assert.False(t, ok)

	fh, data, err := bind.File(req, "image")
	require.NoError(t, err)
	assert.Equal(t, "atlas.png", fh.Filename)
	assert.Equal(t, []byte("png-bytes"), data)

	_, _, err = bind.File(req, "other")
	assert.ErrorIs(t, err, bind.ErrMissingFile)
}
