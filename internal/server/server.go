// Package server exposes parsed hands to external renderers over a
// websocket: the client sends a (hand, index) request and receives the
// reconstructed GameState for that point in the timeline. The server owns
// no state beyond the parsed hands; every response is recomputed from the
// replay records.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cardsharp/handreplay/internal/handhistory"
)

// HandSummary is the index entry returned for each loaded hand.
type HandSummary struct {
	Index     int    `json:"index"`
	HandID    string `json:"handId"`
	TableName string `json:"tableName"`
	Stakes    string `json:"stakes"`
	Players   int    `json:"players"`
	Actions   int    `json:"actions"`
	Winner    string `json:"winner,omitempty"`
}

// Server serves replay state for a fixed set of parsed hands.
type Server struct {
	hands    []*handhistory.HandReplay
	cfg      Config
	logger   zerolog.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// New creates a server over the given hands.
func New(hands []*handhistory.HandReplay, cfg Config, logger zerolog.Logger) *Server {
	s := &Server{
		hands:  hands,
		cfg:    cfg,
		logger: logger,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
	}
	if cfg.AllowAnyOrigin {
		s.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
	return s
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/hands", s.handleIndex)
	mux.HandleFunc("/ws", s.handleWS)

	s.httpSrv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.ShutdownSeconds)*time.Second)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("shutdown")
		}
	}()

	s.logger.Info().Str("addr", s.cfg.Addr).Int("hands", len(s.hands)).Msg("listening")
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	summaries := make([]HandSummary, len(s.hands))
	for i, hand := range s.hands {
		summaries[i] = HandSummary{
			Index:     i,
			HandID:    hand.HandID,
			TableName: hand.TableName,
			Stakes:    hand.Stakes,
			Players:   len(hand.Players),
			Actions:   len(hand.Actions),
			Winner:    hand.Winner,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		s.logger.Warn().Err(err).Msg("encode index")
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("upgrade failed")
		return
	}
	c := newConnection(conn, s)
	s.logger.Info().Str("conn", c.id).Str("remote", conn.RemoteAddr().String()).Msg("client connected")
	c.start()
}
