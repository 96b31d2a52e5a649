package stub

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewRouter(NewHandler()))
	t.Cleanup(server.Close)
	return server
}

func TestPing(t *testing.T) {
	server := setupServer(t)

	resp, err := http.Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
}

func TestHandleChat(t *testing.T) {
	server := setupServer(t)

	post := func(t *testing.T, payload string) *http.Response {
		t.Helper()
		resp, err := http.Post(server.URL+"/chat", "application/json", bytes.NewBufferString(payload))
		require.NoError(t, err)
		t.Cleanup(func() { _ = resp.Body.Close() })
		return resp
	}

	t.Run("Known keyword gets its canned answer", func(t *testing.T) {
		resp := post(t, `{"question": "What kind of base layers should I bring?"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body ChatResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Bring wool or synthetic layers.", body.Answer)
	})

	t.Run("Unknown question gets the fallback answer", func(t *testing.T) {
		resp := post(t, `{"question": "What is the meaning of life?"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body ChatResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body.Answer)
	})

	t.Run("Missing question is a 400", func(t *testing.T) {
		resp := post(t, `{}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body.Error, "Question")
	})

	t.Run("Malformed JSON is a 400", func(t *testing.T) {
		resp := post(t, `not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
