// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/mini-ledger/internal/accountdelivery"
	"github.com/go-petr/mini-ledger/internal/accountrepo"
	"github.com/go-petr/mini-ledger/internal/accountservice"
	"github.com/go-petr/mini-ledger/internal/domain"
	"github.com/go-petr/mini-ledger/internal/middleware"
	"github.com/go-petr/mini-ledger/internal/transferdelivery"
	"github.com/go-petr/mini-ledger/pkg/configpkg"
)

const (
	// AppName is reported by the meta endpoint.
	AppName = "mini-ledger"
	// AppVersion is reported by the meta endpoint.
	AppVersion = "0.1.0"
)

// SeedAccounts returns the demo accounts every fresh server starts with.
func SeedAccounts() []domain.Account {
	return []domain.Account{
		{ID: 1, DisplayName: "Alice", Handle: "alice", Balance: 100},
		{ID: 2, DisplayName: "Bob", Handle: "bob", Balance: 250},
	}
}

// Server holds the account store, handlers router and configuration.
type Server struct {
	Repo   *accountrepo.RepoMem
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo, err := accountrepo.NewSeeded(SeedAccounts())
	if err != nil {
		return nil, err
	}

	accountService := accountservice.New(accountRepo, config.DefaultStartingBalance)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(accountService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.GET("/", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"name": AppName, "version": AppVersion})
	})
	engine.GET("/health", func(gctx *gin.Context) {
		gctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/handles/:handle", accountHandler.GetByHandle)

	engine.POST("/transfers", transferHandler.Create)

	server := &Server{
		Repo:   accountRepo,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
