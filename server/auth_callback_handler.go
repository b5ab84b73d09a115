package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jrsteele09/instantgame-oauth2/grant"
	"github.com/jrsteele09/instantgame-oauth2/internal/errors"
	"github.com/jrsteele09/instantgame-oauth2/provider"
	"github.com/rs/zerolog/log"
)

func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.FormValue works for both query params and POST form data
		state := r.FormValue("state")
		code := r.FormValue("code")
		errorParam := r.FormValue("error")
		errorDesc := r.FormValue("error_description")

		if state == "" || (code == "" && errorParam == "") {
			http.Error(w, "Missing code or state parameter", http.StatusBadRequest)
			return
		}

		// Only a callback for a login this server started may end it
		authState, err := s.authState.Get(state)
		if err != nil || authState == nil {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		// Clean up state after use
		if err := s.authState.Delete(state); err != nil {
			http.Error(w, "Invalid state parameter", http.StatusInternalServerError)
			return
		}

		if errorParam != "" {
			err := fmt.Errorf("authorization failed: %s - %s", errorParam, errorDesc)
			s.deliver(LoginResult{Err: err})
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if authState.Expired(time.Now(), s.stateTTL) {
			http.Error(w, "Login attempt expired, start again", http.StatusBadRequest)
			return
		}

		token, err := s.provider.AccessToken(r.Context(), grant.AuthorizationCode{}, grant.Options{"code": code})
		if err != nil {
			log.Error().Err(err).Str("request_id", requestID(r)).Msg("token exchange failed")
			s.deliver(LoginResult{Err: err})

			var perr *provider.ProviderError
			if errors.As(err, &perr) {
				http.Error(w, fmt.Sprintf("Token exchange rejected: %s", perr.Message), http.StatusBadGateway)
				return
			}
			http.Error(w, "Token exchange failed", http.StatusBadGateway)
			return
		}

		s.deliver(LoginResult{Token: token})

		if authState.ReturnURL != "" {
			http.Redirect(w, r, authState.ReturnURL, http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = fmt.Fprintln(w, "Login complete. You can close this window.")
	}
}
