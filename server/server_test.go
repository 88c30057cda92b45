package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/ainews/server/mocks"
)

func testConfig() *mocks.ConfigProviderMock {
	return &mocks.ConfigProviderMock{
		GetServerConfigFunc: func() (string, time.Duration) { return ":8080", 30 * time.Second },
		GetFeedConfigFunc:   func() (string, string) { return "AI行业资讯", "http://localhost:8080" },
	}
}

func TestServer_New(t *testing.T) {
	srv := New(testConfig(), &mocks.StoreMock{}, nil, "1.0.0", false)
	assert.NotNil(t, srv)
	assert.Equal(t, "1.0.0", srv.version)
	assert.False(t, srv.debug)
	assert.Nil(t, srv.history)
}

func TestServer_Run(t *testing.T) {
	// find free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := testConfig()
	cfg.GetServerConfigFunc = func() (string, time.Duration) {
		return fmt.Sprintf("127.0.0.1:%d", port), 30 * time.Second
	}

	srv := New(cfg, &mocks.StoreMock{}, nil, "1.0.0", true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// wait for server to start
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		return err == nil && resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 2*time.Second, 20*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/ping", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "ainews", resp.Header.Get("App-Name"))
	assert.Equal(t, "1.0.0", resp.Header.Get("App-Version"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_RunListenError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	cfg := testConfig()
	cfg.GetServerConfigFunc = func() (string, time.Duration) { return listener.Addr().String(), time.Second }

	err = New(cfg, &mocks.StoreMock{}, nil, "1.0.0", false).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server error")
}

func TestRenderJSON(t *testing.T) {
	data := map[string]string{"message": "test", "status": "ok"}

	req := httptest.NewRequest("GET", "/test", http.NoBody)
	w := httptest.NewRecorder()
	renderJSON(w, req, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, data, result)
}

func TestRenderError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		expected string
	}{
		{name: "with error", err: fmt.Errorf("something failed"), code: http.StatusBadRequest, expected: "something failed"},
		{name: "nil error", err: nil, code: http.StatusInternalServerError, expected: "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", http.NoBody)
			w := httptest.NewRecorder()
			renderError(w, req, tt.err, tt.code)

			assert.Equal(t, tt.code, w.Code)
			var result map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.Equal(t, tt.expected, result["error"])
		})
	}
}
