// Package server is a loopback HTTP server that drives one authorization code
// login: it sends the browser to the authorize page and exchanges the code the
// service redirects back with.
package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jrsteele09/instantgame-oauth2/oauth2"
	"github.com/jrsteele09/instantgame-oauth2/provider"
	"github.com/jrsteele09/instantgame-oauth2/server/authflowrepo"
	"github.com/rs/zerolog/log"
	xoauth2 "golang.org/x/oauth2"
)

// Provider is what the server needs from the OAuth2 adapter.
// Both *provider.Provider and *provider.AsyncProvider satisfy it.
type Provider interface {
	provider.TokenExchanger
	AuthCodeURL(state string, opts ...xoauth2.AuthCodeOption) (string, string)
}

type Config interface {
	GetEnv() string
	GetStateTTL() time.Duration
}

// LoginResult is the outcome of a completed callback.
type LoginResult struct {
	Token *oauth2.AccessToken
	Err   error
}

type Server struct {
	env       string
	stateTTL  time.Duration
	mux       *http.ServeMux
	routes    []string
	provider  Provider
	authState authflowrepo.Repo

	results    chan LoginResult
	resultOnce sync.Once
}

func New(cfg Config, p Provider, authStateRepo authflowrepo.Repo) (*Server, error) {
	if p == nil {
		return nil, fmt.Errorf("[Server New] provider is required")
	}
	if authStateRepo == nil {
		authStateRepo = authflowrepo.NewInMemoryRepo()
	}

	s := &Server{
		env:       cfg.GetEnv(),
		stateTTL:  cfg.GetStateTTL(),
		mux:       http.NewServeMux(),
		provider:  p,
		authState: authStateRepo,
		results:   make(chan LoginResult, 1),
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Results delivers the first completed login, successful or not.
func (s *Server) Results() <-chan LoginResult {
	return s.results
}

func (s *Server) deliver(res LoginResult) {
	delivered := false
	s.resultOnce.Do(func() {
		s.results <- res
		delivered = true
	})
	if !delivered {
		log.Debug().Msg("login already completed, ignoring later callback result")
	}
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
