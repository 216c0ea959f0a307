package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/artyom-g-dv/grandiose/internal/discovery"
	"github.com/artyom-g-dv/grandiose/internal/logging"
)

// DefaultInterval is how often the Finder is polled when Config.Interval is
// not set.
const DefaultInterval = time.Second

const shutdownTimeout = 5 * time.Second

// Config holds the server configuration
type Config struct {
	Host     string
	Port     int
	Interval time.Duration
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Lister is the source of snapshots. *discovery.Finder satisfies it.
type Lister interface {
	CurrentSources() ([]discovery.Source, error)
}

// Snapshot is the JSON document served on /sources and pushed over /ws.
type Snapshot struct {
	Revision  uint64             `json:"revision"`
	UpdatedAt time.Time          `json:"updated_at"`
	Sources   []discovery.Source `json:"sources"`
}

// Server publishes the sources of a Finder over HTTP and WebSocket. The
// caller owns the Finder and closes it after Run returns.
type Server struct {
	config   Config
	lister   Lister
	upgrader websocket.Upgrader
	now      func() time.Time

	mu       sync.Mutex
	snapshot Snapshot
	changed  chan struct{} // closed and replaced on every new revision
	listener net.Listener
	clients  int
}

// New creates a new Server instance
func New(config Config, lister Lister) *Server {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	return &Server{
		config: config,
		lister: lister,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		now:      time.Now,
		snapshot: Snapshot{Sources: []discovery.Source{}},
		changed:  make(chan struct{}),
	}
}

// Listen binds the listen address. Run calls it when it has not been called.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run polls the Finder and serves clients until ctx is cancelled or polling
// fails because the Finder was closed.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	logging.Info("Source feed listening",
		zap.String("addr", ln.Addr().String()),
		zap.Duration("interval", s.config.Interval),
	)

	g.Go(func() error {
		return s.pollLoop(ctx)
	})
	g.Go(func() error {
		if err := httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	logging.Info("Source feed stopped")
	logging.Sync()
	return err
}

func (s *Server) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		if err := s.Refresh(); err != nil {
			if discovery.IsInvalidState(err) {
				return err
			}
			logging.Warn("Failed to poll sources", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Refresh polls the Finder once and publishes a new revision when the
// snapshot differs from the last one.
func (s *Server) Refresh() error {
	sources, err := s.lister.CurrentSources()
	if err != nil {
		return err
	}
	if sources == nil {
		sources = []discovery.Source{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.Revision > 0 && reflect.DeepEqual(s.snapshot.Sources, sources) {
		return nil
	}

	s.snapshot = Snapshot{
		Revision:  s.snapshot.Revision + 1,
		UpdatedAt: s.now(),
		Sources:   sources,
	}
	close(s.changed)
	s.changed = make(chan struct{})

	logging.Debug("Source snapshot changed",
		zap.Uint64("revision", s.snapshot.Revision),
		zap.Int("sources", len(sources)),
	)
	return nil
}

// current returns the latest snapshot and a channel closed on the next one.
func (s *Server) current() (Snapshot, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.changed
}

// Clients returns the number of connected WebSocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients
}

func (s *Server) addClient(delta int) {
	s.mu.Lock()
	s.clients += delta
	s.mu.Unlock()
}
