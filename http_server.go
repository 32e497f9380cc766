package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sheep-server/session"
)

type HTTPHandler struct {
	Server    *Server
	StartedAt time.Time
}

func NewHTTPServer(server *Server, cfg *Config) http.Handler {
	httpHandler := HTTPHandler{Server: server, StartedAt: time.Now()}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/", httpHandler.uptime())
	r.Group(func(r chi.Router) {
		if cfg.ConnectRateLimit > 0 {
			r.Use(httprate.Limit(cfg.ConnectRateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
		}
		r.Get("/ws", httpHandler.websocket())
	})
	if cfg.AdminJWTSecret != "" {
		r.With(NewAdminJWT(cfg.AdminJWTSecret).Middleware).Get("/rooms", httpHandler.getRooms())
	}
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("ip", r.RemoteAddr).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		LogErrorWhileWritingJSON(err)
	}
}

func (h HTTPHandler) uptime() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, struct {
			Uptime float64 `json:"uptime"`
		}{Uptime: time.Since(h.StartedAt).Seconds()})
	}
}

func (h HTTPHandler) getRooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, h.Server.Coordinator().Rooms())
	}
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		defer conn.Close()
		clientWs := NewClientWebsocket(conn)

		id := session.ConnID(uuid.NewString())
		logger := GetConnLogger(r.RemoteAddr, id)
		client := NewClient(id, logger)
		h.Server.Connect(client)
		logger.Connected(h.Server.ClientCount())
		go clientWs.WritePump(client.Messages())

		for {
			envelope, err := clientWs.ReadEvent()
			if err != nil {
				if errors.Is(err, ErrMalformedEvent) {
					logger.MalformedEvent(err)
					continue
				}
				break
			}
			h.Server.Handle(client, envelope.Event, envelope.Data)
		}
		h.Server.Disconnect(client)
		logger.Disconnected()
	}
}
