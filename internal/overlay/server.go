// Package overlay serves live game state to stream overlays and
// dashboards over HTTP and websockets.
package overlay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"chickenescape/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Server struct {
	Hub  *Hub
	Addr string
	log  *logrus.Entry
}

func NewServer(addr string, hub *Hub) *Server {
	return &Server{
		Hub:  hub,
		Addr: addr,
		log:  logger.Component("overlay"),
	}
}

// Handler returns the routes: /ws, /state and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/state", enableCORS(s.handleState))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	return mux
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Infof("overlay listening on %s", s.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.Hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next(w, r)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	codec, err := CodecByName(r.URL.Query().Get("codec"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("upgrade failed")
		return
	}

	id, send := s.Hub.Register()
	c := &client{
		hub:   s.Hub,
		conn:  conn,
		codec: codec,
		id:    id,
		send:  send,
		log: s.log.WithFields(logrus.Fields{
			"subscriber": id,
			"codec":      codec.Name(),
			"remote":     r.RemoteAddr,
		}),
	}
	c.log.Info("overlay connected")

	go c.writePump()
	go c.readPump()
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.Hub.Latest()
	if !ok {
		http.Error(w, "no state yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.log.WithError(err).Debug("write state")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
