// Package httpapi exposes the link feed over HTTP with gin. Every request
// gets a session derived from its bearer token; failures are rendered as
// {"error": {"kind", "message"}} with a status derived from the error kind.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/linkfeed/internal/logging"
	"github.com/dmitrijs2005/linkfeed/internal/server/models"
	"github.com/dmitrijs2005/linkfeed/internal/server/services"
	"github.com/dmitrijs2005/linkfeed/internal/server/session"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.AuthPayload, error)
	Login(ctx context.Context, email, password string) (*services.AuthPayload, error)
	UserLinks(ctx context.Context, userID int64) ([]*models.Link, error)
}

type LinkService interface {
	Link(ctx context.Context, id int64) (*models.Link, error)
	Post(ctx context.Context, sess session.Session, in services.PostInput) (*models.Link, error)
	Update(ctx context.Context, id int64, patch models.LinkPatch) (*models.Link, error)
	Delete(ctx context.Context, id int64) (*models.Link, error)
	Vote(ctx context.Context, sess session.Session, linkID int64) (*services.VoteReceipt, error)
	Relations(ctx context.Context, links []*models.Link) (*services.Relations, error)
}

type FeedService interface {
	Resolve(ctx context.Context, args services.FeedArgs) (*services.Feed, error)
	Relations(ctx context.Context, links []*models.Link) (*services.Relations, error)
}

// Server is the HTTP front of the application.
type Server struct {
	address         string
	logger          logging.Logger
	users           UserService
	links           LinkService
	feeds           FeedService
	tokens          session.TokenDecoder
	shutdownTimeout time.Duration
	router          *gin.Engine
}

func NewServer(addr string, l logging.Logger, us UserService, ls LinkService, fs FeedService, tokens session.TokenDecoder, shutdownTimeout time.Duration) *Server {
	s := &Server{
		address:         addr,
		logger:          l.With("module", "http_server"),
		users:           us,
		links:           ls,
		feeds:           fs,
		tokens:          tokens,
		shutdownTimeout: shutdownTimeout,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger, gin.CustomRecovery(s.recovery), s.sessionMiddleware)

	r.GET("/health", health)

	r.POST("/signup", s.signup)
	r.POST("/login", s.login)

	r.GET("/feed", s.feed)

	r.POST("/links", s.post)
	r.GET("/links/:id", s.link)
	r.PATCH("/links/:id", s.updateLink)
	r.DELETE("/links/:id", s.deleteLink)
	r.POST("/links/:id/votes", s.vote)

	r.GET("/users/:id/links", s.userLinks)

	return r
}

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
