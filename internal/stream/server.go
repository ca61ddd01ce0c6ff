package stream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/sirupsen/logrus"
)

const (
	writeTimeout     = 2 * time.Second
	DefaultFrameRate = 30
	controlBuffer    = 64
)

type Options struct {
	FrameRate int
	// TimeScale is simulated seconds per wall second.
	TimeScale float64
	Logger    logrus.FieldLogger
}

// Server is a frame driver that publishes the simulation over websockets.
// Only the Run goroutine touches the simulator; client controls are queued
// to it.
type Server struct {
	upgrader websocket.Upgrader
	sim      *sim.Simulator
	log      logrus.FieldLogger
	interval time.Duration
	scale    float64

	controls chan string

	mu      sync.RWMutex
	clients map[*SafeWriter]struct{}
	latest  *Frame
}

func NewServer(s *sim.Simulator, opts Options) *Server {
	if opts.FrameRate <= 0 {
		opts.FrameRate = DefaultFrameRate
	}
	if opts.TimeScale <= 0 {
		opts.TimeScale = 1
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}

	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sim:      s,
		log:      opts.Logger.WithField("component", "stream"),
		interval: time.Second / time.Duration(opts.FrameRate),
		scale:    opts.TimeScale,
		controls: make(chan string, controlBuffer),
		clients:  make(map[*SafeWriter]struct{}),
		latest:   snapshot(s),
	}
}

func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Run drives the simulator until ctx is done, broadcasting a frame after
// every tick. All connections are closed on return.
func (s *Server) Run(ctx context.Context) error {
	if !s.sim.IsRunning() {
		s.sim.Start()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.closeAll()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-s.controls:
			s.apply(c)
		case now := <-ticker.C:
			s.Advance(now.Sub(last).Seconds() * s.scale)
			last = now
		}
	}
}

// Advance applies queued controls, ticks the simulator by delta simulated
// seconds and broadcasts the result. It must only be called from the
// goroutine that owns the simulator.
func (s *Server) Advance(delta float64) {
drain:
	for {
		select {
		case c := <-s.controls:
			s.apply(c)
		default:
			break drain
		}
	}

	s.sim.Tick(delta)
	frame := snapshot(s.sim)

	s.mu.Lock()
	s.latest = frame
	s.mu.Unlock()

	s.broadcast(frame)
}

func (s *Server) apply(c string) {
	switch c {
	case ControlPause:
		s.sim.Pause()
	case ControlResume:
		s.sim.Resume()
	case ControlStart:
		if s.sim.State() == sim.Paused {
			s.sim.Resume()
		} else {
			s.sim.Start()
		}
	case ControlStop:
		s.sim.Stop()
	}
	s.log.WithFields(logrus.Fields{"control": c, "state": s.sim.State()}).Debug("control applied")
}

func (s *Server) broadcast(v any) {
	s.mu.RLock()
	clients := make([]*SafeWriter, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		if err := c.WriteJSON(v); err != nil {
			s.log.WithError(err).Debug("dropping client")
			s.remove(c)
		}
	}
}

func (s *Server) remove(c *SafeWriter) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if ok {
		c.Close()
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[*SafeWriter]struct{})
	s.mu.Unlock()

	for c := range clients {
		c.CloseWithReason(websocket.CloseGoingAway, "server shutting down")
	}
}

// ServeHTTP upgrades the request, sends the latest frame and then reads
// control messages until the client goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := NewSafeWriter(conn)
	s.mu.Lock()
	s.clients[client] = struct{}{}
	latest := s.latest
	s.mu.Unlock()
	defer s.remove(client)

	log := s.log.WithField("remote", conn.RemoteAddr().String())
	log.Info("client connected")

	if err := client.WriteJSON(latest); err != nil {
		log.WithError(err).Warn("initial frame failed")
		return
	}

	for {
		var c Control
		if err := conn.ReadJSON(&c); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("read failed")
			}
			log.Info("client disconnected")
			return
		}

		switch c.Type {
		case ControlPause, ControlResume, ControlStart, ControlStop:
			select {
			case s.controls <- c.Type:
			default:
				log.WithField("control", c.Type).Warn("control queue full, dropping")
			}
		default:
			msg := ErrorMessage{Type: MessageError, Message: fmt.Sprintf("unknown control %q", c.Type)}
			if err := client.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
