package server_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/instantgame-oauth2/provider"
	"github.com/jrsteele09/instantgame-oauth2/server"
	"github.com/jrsteele09/instantgame-oauth2/server/authflowrepo"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	ttl time.Duration
}

func (testConfig) GetEnv() string {
	return "TEST"
}

func (c testConfig) GetStateTTL() time.Duration {
	return c.ttl
}

func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if r.PostForm.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"issued","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newLoginServer(t *testing.T, ttl time.Duration, async bool) (*server.Server, authflowrepo.Repo) {
	t.Helper()
	tokenSrv := newTokenServer(t)
	cfg := provider.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost/callback",
		WebURL:       "https://web.test",
		APIURL:       tokenSrv.URL,
	}

	var p server.Provider
	var err error
	if async {
		p, err = provider.NewAsync(cfg, provider.WithHTTPClient(tokenSrv.Client()))
	} else {
		p, err = provider.New(cfg, provider.WithHTTPClient(tokenSrv.Client()))
	}
	require.NoError(t, err)

	repo := authflowrepo.NewInMemoryRepo()
	s, err := server.New(testConfig{ttl: ttl}, p, repo)
	require.NoError(t, err)
	return s, repo
}

func startLogin(t *testing.T, s *server.Server, query string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.RouteLogin+query, nil))
	require.Equal(t, http.StatusFound, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "web.test", loc.Host)
	require.Equal(t, "/oauth/authorize", loc.Path)
	return loc.Query().Get("state")
}

func callback(s *server.Server, code, state string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	q := url.Values{"code": {code}, "state": {state}}
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.RouteCallback+"?"+q.Encode(), nil))
	return rec
}

func TestServer_LoginFlow(t *testing.T) {
	for name, async := range map[string]bool{"sync provider": false, "async provider": true} {
		t.Run(name, func(t *testing.T) {
			s, _ := newLoginServer(t, time.Minute, async)
			state := startLogin(t, s, "")

			rec := callback(s, "good-code", state)
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

			select {
			case res := <-s.Results():
				require.NoError(t, res.Err)
				require.Equal(t, "issued", res.Token.AccessToken)
			default:
				t.Fatal("no login result delivered")
			}
		})
	}
}

func TestServer_Callback(t *testing.T) {
	t.Run("state is single use", func(t *testing.T) {
		s, _ := newLoginServer(t, time.Minute, false)
		state := startLogin(t, s, "")

		require.Equal(t, http.StatusOK, callback(s, "good-code", state).Code)
		require.Equal(t, http.StatusBadRequest, callback(s, "good-code", state).Code)
	})

	t.Run("unknown state", func(t *testing.T) {
		s, _ := newLoginServer(t, time.Minute, false)
		require.Equal(t, http.StatusBadRequest, callback(s, "good-code", "forged").Code)
	})

	t.Run("missing code", func(t *testing.T) {
		s, _ := newLoginServer(t, time.Minute, false)
		require.Equal(t, http.StatusBadRequest, callback(s, "", "x").Code)
	})

	t.Run("expired state", func(t *testing.T) {
		s, repo := newLoginServer(t, time.Minute, false)
		require.NoError(t, repo.Upsert("old", &authflowrepo.AuthFlowState{CreatedAt: time.Now().Add(-time.Hour)}))
		require.Equal(t, http.StatusBadRequest, callback(s, "good-code", "old").Code)
	})

	t.Run("rejected code", func(t *testing.T) {
		s, _ := newLoginServer(t, time.Minute, false)
		state := startLogin(t, s, "")

		rec := callback(s, "bad-code", state)
		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid_grant")

		res := <-s.Results()
		require.ErrorIs(t, res.Err, provider.ErrProviderResponse)
	})

	t.Run("authorization error", func(t *testing.T) {
		s, _ := newLoginServer(t, time.Minute, false)
		state := startLogin(t, s, "")

		rec := httptest.NewRecorder()
		q := url.Values{"error": {"access_denied"}, "error_description": {"nope"}, "state": {state}}
		s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.RouteCallback+"?"+q.Encode(), nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		res := <-s.Results()
		require.ErrorContains(t, res.Err, "access_denied")

		// the state is consumed by the failed attempt
		require.Equal(t, http.StatusBadRequest, callback(s, "good-code", state).Code)
	})

	t.Run("authorization error without known state is ignored", func(t *testing.T) {
		s, _ := newLoginServer(t, time.Minute, false)
		startLogin(t, s, "")

		for _, query := range []string{"?error=access_denied", "?error=access_denied&state=forged"} {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.RouteCallback+query, nil))
			require.Equal(t, http.StatusBadRequest, rec.Code)
		}

		select {
		case res := <-s.Results():
			t.Fatalf("stray callback delivered a result: %v", res.Err)
		default:
		}
	})

	t.Run("local return url", func(t *testing.T) {
		s, _ := newLoginServer(t, time.Minute, false)
		state := startLogin(t, s, "?return_url=/games")

		rec := callback(s, "good-code", state)
		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/games", rec.Header().Get("Location"))
	})

	t.Run("foreign return url dropped", func(t *testing.T) {
		s, _ := newLoginServer(t, time.Minute, false)
		state := startLogin(t, s, "?return_url=//evil.example")

		rec := callback(s, "good-code", state)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestNew_RequiresProvider(t *testing.T) {
	_, err := server.New(testConfig{}, nil, nil)
	require.Error(t, err)
}
