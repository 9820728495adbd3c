package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// ArrServer is a fake Radarr/Sonarr v3 API serving a fixed list of paths.
type ArrServer struct {
	*httptest.Server
	requests atomic.Int64

	mu       sync.Mutex
	lastPath string
}

// Requests reports how many API calls the server has answered.
func (s *ArrServer) Requests() int64 { return s.requests.Load() }

// LastPath returns the URL path of the most recent request.
func (s *ArrServer) LastPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPath
}

// NewArrServer answers GET /api/v3/movie and /api/v3/series with one object
// per path. A status other than 200 is returned without a body. Requests
// missing the expected X-Api-Key header get 401.
func NewArrServer(t testing.TB, apiKey string, status int, paths ...string) *ArrServer {
	t.Helper()

	srv := &ArrServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.requests.Add(1)
		srv.mu.Lock()
		srv.lastPath = r.URL.Path
		srv.mu.Unlock()
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if !strings.HasPrefix(r.URL.Path, "/api/v3/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("X-Api-Key") != apiKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		items := make([]map[string]any, 0, len(paths))
		for i, p := range paths {
			items = append(items, map[string]any{"id": i + 1, "path": p})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(items)
	}))
	t.Cleanup(srv.Close)
	return srv
}
