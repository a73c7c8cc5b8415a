package devtools

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"mvminimap/pkg/engine/logger"
)

// WebSocket settings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// BroadcastEvery is how many game frames pass between pushes to WebSocket clients.
const BroadcastEvery = 6

// replyTimeout bounds how long a handler waits for the game loop.
const replyTimeout = 2 * time.Second

// Result is the outcome of one console line.
type Result struct {
	Handled bool     `json:"handled"`
	Output  []string `json:"output,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Runner executes a console line. It is only called from Service.
type Runner func(line string) Result

type commandRequest struct {
	line  string
	reply chan Result
}

// Server is the debug HTTP server. Handlers never touch the game directly:
// commands and captures are queued and answered by Service on the game loop.
type Server struct {
	router   chi.Router
	commands chan commandRequest
	shots    chan chan image.Image
	upgrader websocket.Upgrader
	log      *logrus.Entry

	mu       sync.RWMutex
	snapshot Snapshot
	encoded  []byte
	frames   int
	clients  map[*client]struct{}
}

// NewServer creates the server and its routes.
func NewServer() *Server {
	s := &Server{
		commands: make(chan commandRequest, 16),
		shots:    make(chan chan image.Image, 4),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log:     logger.For("devtools"),
		clients: make(map[*client]struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Get("/state", s.handleState)
	r.Get("/minimap.png", s.handleMinimap)
	r.Post("/commands", s.handleCommand)
	r.Get("/ws", s.handleWS)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("shutdown")
		}
	}()
	s.log.WithField("addr", addr).Info("debug server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Service runs queued commands and captures, then publishes snap. Call it
// once per frame from the game loop. capture may be nil.
func (s *Server) Service(run Runner, snap Snapshot, capture func() image.Image) {
	for {
		select {
		case req := <-s.commands:
			req.reply <- run(req.line)
			continue
		case reply := <-s.shots:
			var img image.Image
			if capture != nil {
				img = capture()
			}
			reply <- img
			continue
		default:
		}
		break
	}
	s.publish(snap)
}

func (s *Server) publish(snap Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.encoded = nil
	s.frames++
	due := s.frames%BroadcastEvery == 1 && len(s.clients) > 0
	s.mu.Unlock()
	if !due {
		return
	}

	b, err := s.encodedSnapshot()
	if err != nil {
		s.log.WithError(err).Warn("encode snapshot")
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		select {
		case c.send <- b:
		default:
			// a client that cannot keep up misses this frame
		}
	}
}

func (s *Server) encodedSnapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.encoded == nil {
		b, err := json.Marshal(s.snapshot)
		if err != nil {
			return nil, err
		}
		s.encoded = b
	}
	return s.encoded, nil
}

// Run queues line for the game loop and waits for its result.
func (s *Server) Run(ctx context.Context, line string) (Result, error) {
	req := commandRequest{line: line, reply: make(chan Result, 1)}
	select {
	case s.commands <- req:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	select {
	case res := <-req.reply:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Shot asks the game loop for the current minimap image.
func (s *Server) Shot(ctx context.Context) (image.Image, error) {
	reply := make(chan image.Image, 1)
	select {
	case s.shots <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case img := <-reply:
		if img == nil {
			return nil, errors.New("no minimap image")
		}
		return img, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	b, err := s.encodedSnapshot()
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func (s *Server) handleMinimap(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), replyTimeout)
	defer cancel()
	img, err := s.Shot(ctx)
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	b, err := EncodePNG(img)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(b)
}

type commandBody struct {
	Command string `json:"command"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageSize))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	line := strings.TrimSpace(string(body))
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var cb commandBody
		if err := json.Unmarshal(body, &cb); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		line = strings.TrimSpace(cb.Command)
	}
	if line == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "empty command"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), replyTimeout)
	defer cancel()
	res, err := s.Run(ctx, line)
	if err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	status := http.StatusOK
	if !res.Handled {
		status = http.StatusNotFound
	} else if res.Error != "" {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, res)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start),
		}).Debug("request")
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
