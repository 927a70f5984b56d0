package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/sitekit/component"
	"github.com/kbukum/sitekit/logger"
	"github.com/kbukum/sitekit/site"
)

// Override replaces the normal answer of one path.
type Override struct {
	Status int
	Body   string
}

// Server is the mock site API.
type Server struct {
	engine  *gin.Engine
	handler http.Handler
	config  Config
	log     *logger.Logger

	httpServer *http.Server
	listener   net.Listener

	mu            sync.Mutex
	faqs          []site.FAQ
	testimonials  []site.Testimonial
	overrides     map[string]Override
	delays        map[string]time.Duration
	hits          map[string]int
	contacts      []site.ContactRequest
	subscriptions []site.SubscribeRequest
}

// Option configures a Server.
type Option func(*Server)

// WithConfig sets the listen configuration used by Start.
func WithConfig(cfg Config) Option {
	return func(s *Server) { s.config = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) { s.log = l.WithComponent("mockapi") }
}

// New creates a mock server seeded with the default fixtures.
func New(opts ...Option) *Server {
	switch {
	case gin.Mode() == gin.TestMode:
	case zerolog.GlobalLevel() <= zerolog.DebugLevel:
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		engine: gin.New(),
		log:    logger.Get("mockapi"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.config.ApplyDefaults()
	s.Reset()

	s.engine.Use(recovery(s.log), requestID(), requestLogger(s.log), s.scripted())
	s.registerRoutes()

	// h2c lets HTTP/2 clients talk to the mock without TLS
	s.handler = h2c.NewHandler(s.engine, &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          s.config.IdleTimeout,
	})
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Reset restores fixtures and clears overrides, delays, hits and submissions.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faqs = DefaultFAQs()
	s.testimonials = DefaultTestimonials()
	s.overrides = make(map[string]Override)
	s.delays = make(map[string]time.Duration)
	s.hits = make(map[string]int)
	s.contacts = nil
	s.subscriptions = nil
}

// SetFAQs replaces the served FAQ list.
func (s *Server) SetFAQs(items []site.FAQ) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faqs = items
}

// SetTestimonials replaces the served testimonial list.
func (s *Server) SetTestimonials(items []site.Testimonial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.testimonials = items
}

// Respond makes path answer with status and a raw body until cleared.
func (s *Server) Respond(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[path] = Override{Status: status, Body: body}
}

// Clear removes the override for path.
func (s *Server) Clear(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, path)
}

// Delay holds every answer on path for d, or until the client goes away.
func (s *Server) Delay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[path] = d
}

// Hits returns the number of requests received on path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// Contacts returns the accepted contact requests.
func (s *Server) Contacts() []site.ContactRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]site.ContactRequest(nil), s.contacts...)
}

// Subscriptions returns the accepted subscribe requests.
func (s *Server) Subscriptions() []site.SubscribeRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]site.SubscribeRequest(nil), s.subscriptions...)
}

// scripted counts hits and applies delays and overrides before routing.
func (s *Server) scripted() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		s.mu.Lock()
		s.hits[path]++
		delay := s.delays[path]
		override, overridden := s.overrides[path]
		s.mu.Unlock()

		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-c.Request.Context().Done():
				timer.Stop()
				c.Abort()
				return
			case <-timer.C:
			}
		}

		if overridden {
			c.Data(override.Status, "application/json", []byte(override.Body))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Name implements component.Component.
func (s *Server) Name() string { return "mockapi" }

// Start binds the configured address and serves in the background. It
// returns once the listener is bound.
func (s *Server) Start(context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("mockapi failed to bind %s: %w", s.config.Addr(), err)
	}

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.listener = ln
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("mock API listening", logger.Fields("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("mockapi shutdown: %w", err)
	}
	s.log.Info("mock API stopped")
	return nil
}

// Health reports whether the server is listening.
func (s *Server) Health(context.Context) component.Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.httpServer == nil {
		return component.Health{Name: s.Name(), Status: component.StatusUnhealthy, Message: "not listening"}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy, Message: s.listener.Addr().String()}
}

// URL returns the base URL of the running server, or "" before Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

var _ component.Component = (*Server)(nil)
