package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/asteroid-shooter/internal/config"
	"github.com/tomz197/asteroid-shooter/internal/draw"
	applog "github.com/tomz197/asteroid-shooter/internal/logging"
	"github.com/tomz197/asteroid-shooter/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	defaultDrainSeconds = 15
	defaultIdleSeconds  = 120
	serverCloseTimeout  = 5 * time.Second
)

// games runs one independent session per SSH connection.
type games struct {
	cfg    config.Game
	logger *log.Logger
	idle   time.Duration

	ctx    context.Context // Cancelled on shutdown
	cancel context.CancelFunc

	mu     sync.Mutex // Guards closed and wg.Add against shutdown
	closed bool
	wg     sync.WaitGroup
}

func newGames(cfg config.Game, logger *log.Logger, idle time.Duration) *games {
	ctx, cancel := context.WithCancel(context.Background())
	return &games{cfg: cfg, logger: logger, idle: idle, ctx: ctx, cancel: cancel}
}

func main() {
	logger := applog.New(os.Stderr, applog.Options{
		Level:  config.GetEnv("LOG_LEVEL", "info"),
		Format: config.GetEnv("LOG_FORMAT", "text"),
		Prefix: "ssh",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	drainTimeout := time.Duration(config.GetEnvInt("SSH_DRAIN_SECONDS", defaultDrainSeconds)) * time.Second
	idleTimeout := time.Duration(config.GetEnvInt("SSH_IDLE_SECONDS", defaultIdleSeconds)) * time.Second

	cfg, err := config.Load(config.GetEnv("GAME_CONFIG", ""))
	if err != nil {
		logger.Fatal("failed to load game config", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	g := newGames(cfg, logger, idleTimeout)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	g.shutdown()
	if !g.wait(drainTimeout) {
		logger.Warn("sessions still running after timeout", "timeout", drainTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCloseTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// middleware runs a game for the connection, then hands over to next.
func (g *games) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("new game session", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)

		sizes := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizes.update(win.Width, win.Height)
			}
		}()

		if !g.begin() {
			fmt.Fprintln(sess, "Server is shutting down. Please reconnect in a moment.")
			return
		}
		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(g.ctx, cancel)
		defer stop()

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			Config:       g.cfg,
			TermSizeFunc: sizes.getSize,
			Logger:       logger,
			IdleTimeout:  g.idle,
		})
		g.wg.Done()

		switch {
		case err == nil:
		case errors.Is(err, loop.ErrIdle):
			fmt.Fprintln(sess, "Disconnected for inactivity.")
		case errors.Is(err, context.Canceled) && g.ctx.Err() != nil:
			fmt.Fprintln(sess, "Server is shutting down. Please reconnect in a moment.")
		case errors.Is(err, context.Canceled):
		default:
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// begin registers a session. It fails once shutdown has started.
func (g *games) begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.wg.Add(1)
	return true
}

// shutdown refuses new sessions and cancels the running ones.
func (g *games) shutdown() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
	g.cancel()
}

// wait blocks until every session has returned or the timeout elapses.
func (g *games) wait(timeout time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
