package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"asyncpfs/internal/domain"
	"asyncpfs/internal/observability"
)

// maxBundleBytes caps the size of a registration body.
const maxBundleBytes = 1 << 20

// Server is an in-memory key directory.
//
// It stores one ResponderBundle per username. Each lookup returns the
// identity and long-term keys plus at most one one-time key, which is
// removed so it is never handed out twice. When the one-time keys run out,
// lookups still succeed without one.
//
// Served one-time key ids are remembered per user, so re-registering a
// bundle that still lists a key whose hello is in flight does not publish it
// again.
type Server struct {
	mu      sync.Mutex
	bundles map[domain.Username]*domain.ResponderBundle
	served  map[domain.Username]map[domain.OneTimeKeyID]bool

	log     *observability.Logger
	metrics *observability.Metrics
	mux     *http.ServeMux
}

// NewServer returns an empty directory. metrics may be nil.
func NewServer(log *observability.Logger, metrics *observability.Metrics) *Server {
	if log == nil {
		log = observability.Nop()
	}
	s := &Server{
		bundles: make(map[domain.Username]*domain.ResponderBundle),
		served:  make(map[domain.Username]map[domain.OneTimeKeyID]bool),
		log:     log,
		metrics: metrics,
		mux:     http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /register", s.handleRegister)
	s.mux.HandleFunc("GET /bundle/{username}", s.handleBundle)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if metrics != nil {
		s.mux.Handle("GET /metrics", metrics.Handler())
	}
	return s
}

// ServeHTTP routes the request and records an access log line.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	route := r.Pattern
	if route == "" {
		route = "unmatched"
	}
	if s.metrics != nil {
		s.metrics.DirectoryRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
	s.log.Request(r.Method, r.URL.Path, rec.status, rec.bytes, time.Since(start))
}

// Register stores or replaces the bundle for b.Username and returns how
// many one-time keys it published. Keys already served are skipped.
func (s *Server) Register(b domain.ResponderBundle) (int, error) {
	if err := validateBundle(b); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	served := s.served[b.Username]
	fresh := make([]domain.OneTimePublicKey, 0, len(b.OneTimeKeys))
	listed := make(map[domain.OneTimeKeyID]bool, len(served))
	for _, k := range b.OneTimeKeys {
		if served[k.ID] {
			listed[k.ID] = true
			continue
		}
		fresh = append(fresh, k)
	}
	// Ids missing from the new bundle were retired by the owner and can be
	// forgotten.
	s.served[b.Username] = listed
	b.OneTimeKeys = fresh
	s.bundles[b.Username] = &b
	return len(fresh), nil
}

// Bundle returns the published bundle for username, consuming one one-time
// key if any remain.
func (s *Server) Bundle(username domain.Username) (domain.PublishedBundle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bundles[username]
	if !ok {
		return domain.PublishedBundle{}, false
	}
	out := domain.PublishedBundle{
		Username:      b.Username,
		Info:          b.Info,
		LongTermKeyID: b.LongTermKeyID,
	}
	if len(b.OneTimeKeys) > 0 {
		otk := b.OneTimeKeys[0]
		b.OneTimeKeys = b.OneTimeKeys[1:]
		out.Info.OneTimePublicKey = otk.Key
		out.OneTimeKeyID = otk.ID
		if s.served[username] == nil {
			s.served[username] = make(map[domain.OneTimeKeyID]bool)
		}
		s.served[username][otk.ID] = true
		if s.metrics != nil {
			s.metrics.OneTimeKeysServed.Inc()
		}
	}
	return out, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var b domain.ResponderBundle
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBundleBytes)).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	published, err := s.Register(b)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.log.WithPeer(b.Username.String()).Info("bundle registered")
	writeJSON(w, http.StatusOK, map[string]int{"one_time_keys": published})
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	b, ok := s.Bundle(domain.Username(r.PathValue("username")))
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("not found"))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func validateBundle(b domain.ResponderBundle) error {
	switch {
	case b.Username == "":
		return errors.New("username required")
	case len(b.Info.IdentityPublicKey.Key) != domain.X25519KeySize:
		return fmt.Errorf("identity key must be %d bytes", domain.X25519KeySize)
	case len(b.Info.LongTermPublicKey.Key) != domain.X25519KeySize:
		return fmt.Errorf("long-term key must be %d bytes", domain.X25519KeySize)
	case b.LongTermKeyID == "":
		return errors.New("long-term key id required")
	case b.Info.HasOneTimeKey():
		return errors.New("one-time keys belong in one_time_keys")
	}
	seen := make(map[domain.OneTimeKeyID]bool, len(b.OneTimeKeys))
	for _, k := range b.OneTimeKeys {
		if k.ID == "" || seen[k.ID] {
			return fmt.Errorf("one-time key id %q missing or duplicated", k.ID)
		}
		if len(k.Key.Key) != domain.X25519KeySize {
			return fmt.Errorf("one-time key %q must be %d bytes", k.ID, domain.X25519KeySize)
		}
		seen[k.ID] = true
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
