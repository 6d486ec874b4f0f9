package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/adyen/shopsuite/internal/config"
	"github.com/adyen/shopsuite/internal/storefront"
)

// mockHandler creates a simple test handler
func mockHandler(response string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response))
	})
}

// createTestDeps creates ServerDependencies with a mock storefront. The
// server goroutine may log after a test ends, so the logger is a no-op.
func createTestDeps(t *testing.T, port string) ServerDependencies {
	t.Helper()
	return ServerDependencies{
		ServerConfig: config.ServerConfig{Port: port, Markup: "testid"},
		Storefront:   mockHandler("storefront"),
		Logger:       zap.NewNop(),
	}
}

// startTestServer starts a server with the given dependencies and returns listener, server, and port
func startTestServer(t *testing.T, deps ServerDependencies) (net.Listener, *http.Server, int) {
	t.Helper()
	listener, server, err := StartServer(deps)
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	return listener, server, port
}

// httpGet makes an HTTP GET request and returns response body and status
func httpGet(t *testing.T, url string) (string, int) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func TestStartServer_SuccessfulStartup(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0")

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	// THEN
	assert.NotZero(t, port)
	body, status := httpGet(t, fmt.Sprintf("http://localhost:%d/women", port))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "storefront", body)

	body, status = httpGet(t, fmt.Sprintf("http://localhost:%d/healthz", port))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestStartServer_ServesStorefront(t *testing.T) {
	// GIVEN
	store := storefront.NewMemoryStore()
	require.NoError(t, storefront.Seed(context.Background(), store))
	shop, err := storefront.New(store, storefront.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	deps := createTestDeps(t, "0")
	deps.Storefront = shop.Handler()

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	// THEN
	body, status := httpGet(t, fmt.Sprintf("http://localhost:%d/", port))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `data-testid="header"`)
}

func TestStartServer_ListenErrors(t *testing.T) {
	// A listener already holding a port
	existing, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer existing.Close()

	tests := []struct {
		name string
		port string
	}{
		{name: "invalid port", port: "99999"},
		{name: "port already in use", port: fmt.Sprintf("%d", existing.Addr().(*net.TCPAddr).Port)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			listener, server, err := StartServer(createTestDeps(t, tt.port))

			// THEN
			if !assert.Error(t, err) {
				listener.Close()
				server.Close()
			}
		})
	}
}

func TestStartServer_ConcurrentServers(t *testing.T) {
	// GIVEN
	deps1 := createTestDeps(t, "0")
	deps1.Storefront = mockHandler("server1")
	deps2 := createTestDeps(t, "0")
	deps2.Storefront = mockHandler("server2")

	// WHEN
	listener1, server1, port1 := startTestServer(t, deps1)
	defer listener1.Close()
	defer server1.Close()
	listener2, server2, port2 := startTestServer(t, deps2)
	defer listener2.Close()
	defer server2.Close()

	// THEN
	assert.NotEqual(t, port1, port2)
	body1, _ := httpGet(t, fmt.Sprintf("http://localhost:%d/", port1))
	body2, _ := httpGet(t, fmt.Sprintf("http://localhost:%d/", port2))
	assert.Equal(t, "server1", body1)
	assert.Equal(t, "server2", body2)
}

func TestWaitForShutdown_Signals(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(sig.String(), func(t *testing.T) {
			// GIVEN
			deps := createTestDeps(t, "0")
			listener, server, port := startTestServer(t, deps)
			defer listener.Close()
			shutdown := make(chan os.Signal, 1)

			// WHEN
			errCh := make(chan error, 1)
			go func() {
				errCh <- WaitForShutdown(deps.Logger, server, shutdown)
			}()
			shutdown <- sig

			// THEN
			select {
			case err := <-errCh:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("WaitForShutdown did not complete")
			}
			_, err := http.Get(fmt.Sprintf("http://localhost:%d/", port))
			assert.Error(t, err, "server still responding after shutdown")
		})
	}
}

func TestWaitForShutdown_WithActiveRequests(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0")
	started := make(chan struct{})
	var once sync.Once
	deps.Storefront = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte("done"))
	})

	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	bodyCh := make(chan string, 1)
	go func() {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/", port))
		if err != nil {
			bodyCh <- err.Error()
			return
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		bodyCh <- string(body)
	}()
	<-started

	// WHEN
	shutdown := make(chan os.Signal, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- WaitForShutdown(deps.Logger, server, shutdown)
	}()
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case body := <-bodyCh:
		assert.Equal(t, "done", body)
	case <-time.After(2 * time.Second):
		t.Error("Request did not complete in time")
	}
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown did not complete")
	}
}

func TestWaitForShutdownWithTimeout_ClosesStuckServer(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0")
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	deps.Storefront = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
	})
	defer close(release)

	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	go http.Get(fmt.Sprintf("http://localhost:%d/", port))
	<-started

	// WHEN
	shutdown := make(chan os.Signal, 1)
	shutdown <- syscall.SIGTERM
	err := WaitForShutdownWithTimeout(deps.Logger, server, shutdown, 50*time.Millisecond)

	// THEN
	assert.NoError(t, err)
}

func TestRunServe_FullIntegration(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "0")

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- RunServe(deps)
	}()

	// Give server time to start and register for signals
	time.Sleep(100 * time.Millisecond)
	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(syscall.SIGTERM))

	// THEN
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Server did not shut down within timeout")
	}
}

func TestRunServe_StartupFailure(t *testing.T) {
	// GIVEN
	deps := createTestDeps(t, "99999")

	// WHEN
	err := RunServe(deps)

	// THEN
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to create listener"))
}
