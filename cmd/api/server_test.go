package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/library-books-api/internal/data"
)

// TestServer_EndToEnd drives the route table over a real listener so every
// response goes through writeJSON on the wire.
func TestServer_EndToEnd(t *testing.T) {
	app := newTestApplication(t)
	srv := httptest.NewServer(app.routes())
	defer srv.Close()

	send := func(method, path, body string) (int, string) {
		t.Helper()

		var rdr io.Reader
		if body != "" {
			rdr = strings.NewReader(body)
		}
		req, err := http.NewRequest(method, srv.URL+path, rdr)
		require.NoError(t, err)

		res, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer res.Body.Close()

		b, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return res.StatusCode, string(b)
	}

	status, body := send(http.MethodGet, "/healthcheck", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"available","environment":"development","version":"1.0.0"}`, body)

	status, body = send(http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, body)

	status, body = send(http.MethodGet, "/books/12345", "")
	require.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"The book could not be found."}`, body)

	status, body = send(http.MethodPost, "/books",
		`{"title":"The Goldfinch","author":"Donna Tartt","genre":"Fiction","ISBN":"1234"}`)
	require.Equal(t, http.StatusCreated, status)

	var created data.Book
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotZero(t, created.ID)
	assert.Equal(t, "The Goldfinch", created.Title)

	status, body = send(http.MethodGet, "/books", "")
	require.Equal(t, http.StatusOK, status)
	var books []data.Book
	require.NoError(t, json.Unmarshal([]byte(body), &books))
	assert.Len(t, books, 1)

	path := fmt.Sprintf("/books/%d", created.ID)

	status, _ = send(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, status)

	status, body = send(http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"The book could not be found."}`, body)
}
