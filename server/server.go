// Package server exposes the chat engine over HTTP.
package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/DevSars24/ai-mentor/engine"
	"github.com/DevSars24/ai-mentor/profile"
)

// Server wraps the chat engine behind an echo router.
type Server struct {
	echo   *echo.Echo
	engine *engine.Engine
}

// New creates a server for the engine.
func New(eng *engine.Engine) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(requestLogger())

	s := &Server{echo: e, engine: eng}
	e.POST("/chat", s.handleChat)
	e.GET("/health", s.handleHealth)
	return s
}

// Handler exposes the router for in-process serving and tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the listener fails or is closed.
func (s *Server) Start(addr string) error {
	log.Printf("[SERVER] Listening on %s", addr)
	return s.echo.Start(addr)
}

// ChatRequest is the /chat payload.
type ChatRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

// ChatResponse is the /chat reply.
type ChatResponse struct {
	Answer     string      `json:"answer"`
	Reflection string      `json:"reflection"`
	Plan       string      `json:"plan"`
	Meta       engine.Meta `json:"meta"`
}

func (s *Server) handleChat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Query) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	if req.UserID == "" {
		req.UserID = profile.DefaultUserID
	}

	out, err := s.engine.Run(c.Request().Context(), &engine.Input{
		UserID: req.UserID,
		Query:  req.Query,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "chat turn failed")
	}
	if out.Type == engine.OutputError {
		log.Printf("[SERVER] Chat turn error: %v", out.Error)
		return echo.NewHTTPError(http.StatusInternalServerError, "chat turn failed")
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Answer:     out.Answer,
		Reflection: out.Reflection,
		Plan:       out.Plan,
		Meta:       out.Meta,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			req := c.Request()
			log.Printf("[SERVER] %s %s -> %d (%s)", req.Method, req.URL.Path,
				c.Response().Status, time.Since(start).Round(time.Millisecond))
			return err
		}
	}
}
