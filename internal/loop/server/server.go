// Package server hosts survival sessions: it tracks connected clients,
// collects finished runs into a shared leaderboard and fans out shutdown.
// Each client runs its own simulation; nothing about gameplay is shared.
package server

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/chaos-survival/internal/loop/config"
	"github.com/tomz197/chaos-survival/internal/loop/sim"
)

// GameServer is the interface clients use to communicate with the host.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportResult(clientID int, result sim.Result)
	GetSnapshot() *HostSnapshot
}

// Server tracks connected clients and publishes the leaderboard.
type Server struct {
	snapshot     atomic.Pointer[HostSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	resultCh     chan ClientResult
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	logger       *log.Logger

	board       *Leaderboard
	gamesPlayed int
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (rank, shutdown)
}

// ClientResult is a finished run reported by a client.
type ClientResult struct {
	ClientID int
	Result   sim.Result
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type    ClientEventType
	Rank    int // For rank events: 1-based leaderboard position, 0 if unranked
	Session int // For rank events: the reported Result.Session
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventRanked ClientEventType = iota
	EventServerShutdown
)

// Options configures a Server.
type Options struct {
	Logger   *log.Logger // Discarded if nil
	TopCount int         // Leaderboard length; config.TopScoresCount if zero
}

// NewServer creates a new session host.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.TopCount == 0 {
		opts.TopCount = config.TopScoresCount
	}

	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		resultCh:     make(chan ClientResult, 64),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		logger:       opts.Logger,
		board:        NewLeaderboard(opts.TopCount),
	}

	// Create initial empty snapshot
	s.snapshot.Store(&HostSnapshot{TopScores: []TopScoreEntry{}})

	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()

		s.step()

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// step runs one host cycle: registrations, results, snapshot.
func (s *Server) step() {
	s.processRegistrations()
	s.collectResults()
	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timeout, clients still connected", "remaining", s.ClientCount())
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportResult submits a finished run for the leaderboard.
func (s *Server) ReportResult(clientID int, result sim.Result) {
	select {
	case s.resultCh <- ClientResult{ClientID: clientID, Result: result}:
	default:
		s.logger.Warn("result channel full, dropping result", "client", clientID, "score", result.Score)
	}
}

// GetSnapshot returns the current host snapshot.
func (s *Server) GetSnapshot() *HostSnapshot {
	return s.snapshot.Load()
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Debug("client registered", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			s.logger.Debug("client unregistered", "client", clientID)
		default:
			return
		}
	}
}

// collectResults ranks all pending results and tells each client where it landed.
func (s *Server) collectResults() {
	for {
		select {
		case cr := <-s.resultCh:
			s.gamesPlayed++
			rank := s.board.Add(cr.Result)
			if rank > 0 {
				s.logger.Info("new top score",
					"user", cr.Result.Name,
					"score", cr.Result.Score,
					"wave", cr.Result.Wave,
					"rank", rank,
				)
			}

			s.mu.RLock()
			if handle, ok := s.clients[cr.ClientID]; ok {
				select {
				case handle.EventsCh <- ClientEvent{Type: EventRanked, Rank: rank, Session: cr.Result.Session}:
				default:
				}
			}
			s.mu.RUnlock()
		default:
			return
		}
	}
}

// createSnapshot publishes an immutable snapshot of the host state.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&HostSnapshot{
		Players:     players,
		GamesPlayed: s.gamesPlayed,
		TopScores:   s.board.Entries(),
	})
}
