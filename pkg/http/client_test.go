package http

import (
	"io"
	net_http "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient(t *testing.T) {
	var lastMethod string
	var lastContentType string
	var lastAccept string
	var lastUserAgent string
	var lastBody []byte

	testServer := httptest.NewServer(net_http.HandlerFunc(func(w net_http.ResponseWriter, r *net_http.Request) {
		lastMethod = r.Method
		lastContentType = r.Header.Get("Content-Type")
		lastAccept = r.Header.Get("Accept")
		lastUserAgent = r.Header.Get("User-Agent")
		lastBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte("ok"))
	}))
	defer testServer.Close()

	t.Run("Get()", func(t *testing.T) {
		response, err := Get(testServer.URL, "application/json")
		if err != nil {
			t.Error(err)
			return
		}
		defer response.Body.Close()

		assert.Equal(t, 200, response.StatusCode)
		assert.Equal(t, "GET", lastMethod)
		assert.Equal(t, "application/json", lastAccept)
		assert.True(t, strings.HasPrefix(lastUserAgent, "csvlab/"))
	})

	t.Run("Post()", func(t *testing.T) {
		content := []byte("a,b\n1,2\n")

		response, err := Post(testServer.URL, "text/csv", content)
		if err != nil {
			t.Error(err)
			return
		}
		defer response.Body.Close()

		assert.Equal(t, 200, response.StatusCode)
		assert.Equal(t, "POST", lastMethod)
		assert.Equal(t, "text/csv", lastContentType)
		assert.Equal(t, content, lastBody)
		assert.True(t, strings.HasPrefix(lastUserAgent, "csvlab/"))
	})
}
