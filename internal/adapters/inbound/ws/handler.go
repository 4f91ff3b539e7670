// Package ws serves the command protocol over a websocket so a browser
// presentation layer can drive a lint session.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/designlint/designlint/internal/application"
	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/logger"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	pingEvery = (pongWait * 9) / 10

	writeBuffer   = 32
	commandBuffer = 16
)

var errConnClosed = errors.New("connection closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// Handler upgrades connections and gives each one its own controller over
// the shared host and storage.
type Handler struct {
	host    domain.Host
	storage domain.ClientStorage
	cfg     domain.Config
	log     *zap.SugaredLogger
}

func NewHandler(host domain.Host, storage domain.ClientStorage, cfg domain.Config) *Handler {
	return &Handler{host: host, storage: storage, cfg: cfg, log: logger.For(logger.ComponentTransport)}
}

// Routes returns the HTTP handler exposing /ws and /healthz.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

// responder pushes controller responses onto a connection's write queue.
type responder struct {
	writeCh chan<- domain.Response
	done    <-chan struct{}
}

func (r responder) Post(ctx context.Context, resp domain.Response) error {
	select {
	case r.writeCh <- resp:
		return nil
	case <-r.done:
		return errConnClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("Upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	log := h.log.With("remote", r.RemoteAddr)
	log.Infow("Client connected")
	defer log.Infow("Client disconnected")

	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Warnw("Set read deadline failed", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	writeCh := make(chan domain.Response, writeBuffer)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					log.Debugw("Write failed", "error", err)
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	ctrl := application.NewController(h.host, h.storage, responder{writeCh: writeCh, done: writerDone}, h.cfg,
		application.WithLogger(logger.For(logger.ComponentController).With("remote", r.RemoteAddr)))

	cmdCh := make(chan domain.Command, commandBuffer)
	serveDone := make(chan struct{})
	go func() {
		defer close(serveDone)
		_ = ctrl.Serve(ctx, cmdCh)
	}()

	defer func() {
		close(cmdCh)
		<-serveDone
		cancel()
		<-writerDone
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd domain.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			pushError(ctx, writeCh, writerDone, "malformed command: "+err.Error())
			continue
		}
		if cmd.Type == "" {
			pushError(ctx, writeCh, writerDone, "type is required")
			continue
		}

		select {
		case cmdCh <- cmd:
		case <-ctx.Done():
			return
		}
	}
}

func pushError(ctx context.Context, writeCh chan<- domain.Response, done <-chan struct{}, message string) {
	select {
	case writeCh <- domain.Response{Type: domain.ResponseError, Error: message}:
	case <-done:
	case <-ctx.Done():
	}
}
