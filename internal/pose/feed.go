package pose

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultFeedAddr is where the estimator connects unless configured otherwise.
const (
	DefaultFeedAddr = ":8765"
	DefaultFeedPath = "/pose"
)

const (
	readLimit    = 1 << 20
	readTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	// The estimator runs locally next to the game.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Feed is a Source fed by an external estimator over a websocket. Every text message is one
// JSON-encoded Pose; the newest decoded message is what EstimateSinglePose returns.
type Feed struct {
	addr string
	path string

	mu       sync.Mutex
	latest   Pose
	has      bool
	server   *http.Server
	listener net.Listener

	// OnConnect and OnMessageError are optional hooks for logging.
	OnConnect      func(remote string)
	OnMessageError func(err error)
}

// NewFeed returns a feed serving path on addr. Empty values use the defaults.
func NewFeed(addr, path string) *Feed {
	if addr == "" {
		addr = DefaultFeedAddr
	}
	if path == "" {
		path = DefaultFeedPath
	}
	return &Feed{addr: addr, path: path}
}

// Handler returns the websocket endpoint handler.
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(f.path, f.serveWS)
	return mux
}

// Start listens on the feed address and serves in the background.
func (f *Feed) Start() error {
	ln, err := net.Listen("tcp", f.addr)
	if err != nil {
		return fmt.Errorf("pose: listen %s: %w", f.addr, err)
	}
	srv := &http.Server{Handler: f.Handler(), ReadHeaderTimeout: writeTimeout}
	f.mu.Lock()
	f.server, f.listener = srv, ln
	f.mu.Unlock()
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && f.OnMessageError != nil {
			f.OnMessageError(fmt.Errorf("pose: serve: %w", err))
		}
	}()
	return nil
}

// Addr returns the bound address once started, or the configured one.
func (f *Feed) Addr() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listener != nil {
		return f.listener.Addr().String()
	}
	return f.addr
}

// Close stops the server.
func (f *Feed) Close() error {
	f.mu.Lock()
	srv := f.server
	f.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Close()
}

// EstimateSinglePose returns the newest pose received, or ErrNoPose before the first one.
func (f *Feed) EstimateSinglePose(ctx context.Context) (Pose, error) {
	if err := ctx.Err(); err != nil {
		return Pose{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.has {
		return Pose{}, ErrNoPose
	}
	return f.latest, nil
}

func (f *Feed) store(p Pose) {
	f.mu.Lock()
	f.latest, f.has = p, true
	f.mu.Unlock()
}

func (f *Feed) reportErr(err error) {
	if f.OnMessageError != nil {
		f.OnMessageError(err)
	}
}

func (f *Feed) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.reportErr(fmt.Errorf("pose: upgrade: %w", err))
		return
	}
	defer conn.Close()
	if f.OnConnect != nil {
		f.OnConnect(conn.RemoteAddr().String())
	}

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				f.reportErr(fmt.Errorf("pose: read: %w", err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		var p Pose
		if err := json.Unmarshal(msg, &p); err != nil {
			f.reportErr(fmt.Errorf("pose: decode message: %w", err))
			continue
		}
		f.store(p)
	}
}
