package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"stoneage/communication"
	"stoneage/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	qr "github.com/skip2/go-qrcode"
)

//go:embed page.html
var pageFS embed.FS

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// maxSnapshotSize bounds snapshots pushed by a remote engine.
const maxSnapshotSize = 1 << 20

// ServerCommunicator serves the latest snapshot to browsers. The engine
// publishes into it; HTTP handlers only read.
type ServerCommunicator struct {
	latest  communication.Latest
	hub     *hub
	refresh time.Duration
	router  *gin.Engine
	srv     *http.Server
	closing sync.Once
}

// NewServerCommunicator builds the router. Nothing listens until Start.
func NewServerCommunicator(addr string, refresh time.Duration) *ServerCommunicator {
	if refresh <= 0 {
		refresh = 3 * time.Second
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	sc := &ServerCommunicator{
		hub:     newHub(),
		refresh: refresh,
		router:  router,
	}
	sc.srv = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	router.SetHTMLTemplate(template.Must(template.ParseFS(pageFS, "page.html")))
	router.GET("/", sc.handlePage)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api := router.Group("/api")
	api.GET("/state", sc.handleGetState)
	api.POST("/state", sc.handlePostState)
	api.GET("/qr", sc.handleQR)
	router.GET("/ws", sc.handleWS)

	go sc.hub.run()
	return sc
}

// Handler exposes the router, mostly for tests.
func (sc *ServerCommunicator) Handler() http.Handler {
	return sc.router
}

// Start listens until ctx is done, then shuts down gracefully.
func (sc *ServerCommunicator) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", sc.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", sc.srv.Addr, err)
	}
	log.Info().Msgf("viewer listening on http://%s", ln.Addr())

	errc := make(chan error, 1)
	go func() {
		errc <- sc.srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sc.Close()
		return sc.srv.Shutdown(shutdownCtx)
	}
}

// Close disconnects every websocket viewer and stops the hub.
func (sc *ServerCommunicator) Close() {
	sc.closing.Do(func() {
		close(sc.hub.quit)
	})
}

// Publish stores s and pushes it to every websocket viewer.
func (sc *ServerCommunicator) Publish(s game.Snapshot) error {
	data, err := sc.latest.Store(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	sc.hub.publish(data)
	return nil
}

func (sc *ServerCommunicator) Snapshot() (game.Snapshot, bool) {
	return sc.latest.Load()
}

// Viewers is the number of connected websocket viewers.
func (sc *ServerCommunicator) Viewers() int {
	return sc.hub.size()
}

func (sc *ServerCommunicator) handlePage(c *gin.Context) {
	c.HTML(http.StatusOK, "page.html", gin.H{
		"RefreshMs": sc.refresh.Milliseconds(),
	})
}

func (sc *ServerCommunicator) handleGetState(c *gin.Context) {
	data := sc.latest.JSON()
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no game state yet"})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// handlePostState accepts a snapshot from an engine running elsewhere.
func (sc *ServerCommunicator) handlePostState(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSnapshotSize)
	var s game.Snapshot
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := sc.Publish(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// handleQR returns a PNG QR code pointing at this viewer.
func (sc *ServerCommunicator) handleQR(c *gin.Context) {
	url := fmt.Sprintf("http://%s/", c.Request.Host)
	png, err := qr.Encode(url, qr.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "QR generation failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (sc *ServerCommunicator) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	cl := newClient(sc.hub, conn)
	if data := sc.latest.JSON(); data != nil {
		cl.send <- data
	}
	select {
	case sc.hub.register <- cl:
	case <-sc.hub.done:
		conn.Close()
		return
	}
	go cl.writePump()
	go cl.readPump()
}
