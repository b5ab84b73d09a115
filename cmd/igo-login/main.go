package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/instantgame-oauth2/internal/config"
	"github.com/jrsteele09/instantgame-oauth2/provider"
	"github.com/jrsteele09/instantgame-oauth2/server"
	"github.com/jrsteele09/instantgame-oauth2/server/authflowrepo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errStopped = errors.New("stopped before login completed")

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Recovered from panic: %v", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return err
	}
	configureLogging(c)
	displayAppname(c.GetAppName())

	p, err := newProvider(c)
	if err != nil {
		return err
	}

	s, err := server.New(c, p, authflowrepo.NewInMemoryRepo())
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: s, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	fmt.Printf("Open http://localhost%s%s in your browser to log in\n", c.GetPort(), server.RouteLogin)

	result, waitErr := waitForLogin(s, serveErr, c.GetLoginTimeout())
	if err := shutdown(httpServer); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}
	if waitErr != nil {
		return waitErr
	}
	if result.Err != nil {
		return result.Err
	}

	printToken(result)
	return nil
}

func newProvider(c config.Config) (server.Provider, error) {
	cfg := provider.Config{
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		RedirectURI:  c.GetRedirectURI(),
		WebURL:       c.GetWebURL(),
		APIURL:       c.GetAPIURL(),
		Scopes:       c.GetScopes(),
		ErrorStyle:   provider.ErrorStyle(c.GetErrorStyle()),
	}
	opts := []provider.Option{provider.WithClientOptions(c.GetClientOptions())}

	if c.GetAsync() {
		return provider.NewAsync(cfg, opts...)
	}
	return provider.New(cfg, opts...)
}

func configureLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Callback server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForLogin(s *server.Server, serveErr <-chan error, timeout time.Duration) (server.LoginResult, error) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	select {
	case res := <-s.Results():
		return res, nil
	case err := <-serveErr:
		if err == nil {
			err = errStopped
		}
		return server.LoginResult{}, err
	case <-stop:
		return server.LoginResult{}, errStopped
	case <-ctx.Done():
		return server.LoginResult{}, fmt.Errorf("no login within %s: %w", timeout, ctx.Err())
	}
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func printToken(res server.LoginResult) {
	t := res.Token
	fmt.Println("Access token:", t.AccessToken)
	if !t.Expires.IsZero() {
		fmt.Println("Expires:     ", t.Expires.Format(time.RFC3339))
	}
	if len(t.Scopes) > 0 {
		fmt.Println("Scopes:      ", provider.JoinScopes(t.Scopes))
	}
	if t.RefreshToken != nil {
		fmt.Println("Refresh token issued")
	}
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
