package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/instantgame-oauth2/server/authflowrepo"
	"github.com/rs/zerolog/log"
)

// LoginHandler remembers a fresh state and redirects to the authorize page.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, state := s.provider.AuthCodeURL("")

		err := s.authState.Upsert(state, &authflowrepo.AuthFlowState{
			ReturnURL: localReturnURL(r.URL.Query().Get("return_url")),
			CreatedAt: time.Now(),
		})
		if err != nil {
			log.Error().Err(err).Str("request_id", requestID(r)).Msg("failed to store login state")
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// localReturnURL only keeps same-origin paths.
func localReturnURL(u string) string {
	if !strings.HasPrefix(u, "/") || strings.HasPrefix(u, "//") || strings.HasPrefix(u, "/\\") {
		return ""
	}
	return u
}
