package installer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDevice starts a fake installer and returns its host and port.
func newDevice(t *testing.T, handler http.HandlerFunc) (string, int) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

func TestClient_InstallSendsDirectRequest(t *testing.T) {
	t.Parallel()

	var (
		gotMethod      string
		gotPath        string
		gotContentType string
		gotUserAgent   string
		gotBody        map[string]any
	)
	host, port := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotUserAgent = r.Header.Get("User-Agent")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	})

	c := NewClient(Options{Port: port, UserAgent: "pkgdrop/test"})
	err := c.Install(context.Background(), host, "https://example.com/a.pkg")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/install", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "pkgdrop/test", gotUserAgent)
	assert.Equal(t, map[string]any{
		"type":     "direct",
		"packages": []any{"https://example.com/a.pkg"},
	}, gotBody)
}

func TestClient_NonSuccessStatusIsRemoteError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	host, port := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	c := NewClient(Options{Port: port})
	err := c.Install(context.Background(), host, "https://example.com/a.pkg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRemote))

	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusInternalServerError, remote.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "install must not be retried")
}

func TestClient_TransportFailure(t *testing.T) {
	t.Parallel()

	// Grab a free port, then close it so nothing is listening.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	deadPort := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	err = NewClient(Options{Port: deadPort}).Install(context.Background(), "127.0.0.1", "u")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRemote))
	assert.Contains(t, err.Error(), "execute request")
}

func TestClient_ContextCancelAbortsRequest(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	host, port := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewClient(Options{Port: port}).Install(ctx, host, "u")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRemote))
	assert.Contains(t, err.Error(), "execute request")
}

func TestClient_BlankHost(t *testing.T) {
	c := NewClient(Options{})
	err := c.Install(context.Background(), "   ", "u")
	assert.ErrorIs(t, err, ErrHostRequired)
}

func TestEndpointURL(t *testing.T) {
	c := NewClient(Options{})

	tests := []struct {
		host    string
		want    string
		wantErr bool
	}{
		{host: "192.168.1.50", want: "http://192.168.1.50:12801/api/install"},
		{host: "  192.168.1.50  ", want: "http://192.168.1.50:12801/api/install"},
		{host: "http://192.168.1.50/", want: "http://192.168.1.50:12801/api/install"},
		{host: "192.168.1.50:9000", want: "http://192.168.1.50:9000/api/install"},
		{host: "ps4.lan", want: "http://ps4.lan:12801/api/install"},
		{host: "fe80::1", want: "http://[fe80::1]:12801/api/install"},
		{host: "", wantErr: true},
		{host: "10.0.0.1/evil", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			got, err := c.EndpointURL(tt.host)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
