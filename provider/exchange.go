package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/instantgame-oauth2/grant"
	ierrors "github.com/jrsteele09/instantgame-oauth2/internal/errors"
	"github.com/jrsteele09/instantgame-oauth2/oauth2"
	"github.com/jrsteele09/instantgame-oauth2/token/jwt"
	"github.com/jrsteele09/instantgame-oauth2/transport"
	"github.com/rs/zerolog/log"
)

// TokenExchanger is implemented by both the blocking and the non-blocking provider.
type TokenExchanger interface {
	AccessToken(ctx context.Context, g grant.Grant, opts grant.Options) (*oauth2.AccessToken, error)
	ResourceOwner(ctx context.Context, token *oauth2.AccessToken) (ResourceOwner, error)
}

// exchanger holds what both provider variants share: configuration, URL
// resolution, request building and response extraction.
type exchanger struct {
	cfg        Config
	httpClient *http.Client
	validator  ResponseValidator
	grants     *grant.Factory
	decoder    jwt.ClaimsDecoder
}

// exchange is one token request in flight.
type exchange struct {
	id    string
	grant grant.Grant
	req   *http.Request
}

func newExchanger(cfg Config, o *options) (*exchanger, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if o.webURL != "" {
		cfg.WebURL = o.webURL
	}
	if o.apiURL != "" {
		cfg.APIURL = o.apiURL
	}
	cfg = cfg.withDefaults()

	e := &exchanger{
		cfg:        cfg,
		httpClient: o.httpClient,
		validator:  o.validator,
		grants:     o.grants,
		decoder:    o.decoder,
	}

	if e.httpClient == nil {
		client, err := newHTTPClient(o.clientOptions, allowedClientOptions(cfg.ErrorStyle))
		if err != nil {
			return nil, err
		}
		e.httpClient = client
	}
	e.httpClient = noRedirects(e.httpClient)
	if e.validator == nil {
		e.validator = validatorFor(cfg.ErrorStyle)
	}
	if e.grants == nil {
		e.grants = grant.NewFactory()
	}
	if e.decoder == nil {
		e.decoder = jwt.NewUnverifiedDecoder()
	}

	log.Debug().
		Str("provider", Name).
		Str("web_url", cfg.WebURL).
		Str("api_url", cfg.APIURL).
		Str("client_id", cfg.ClientID).
		Str("error_style", string(cfg.ErrorStyle)).
		Msg("OAuth2 provider created")

	return e, nil
}

// Grant resolves a grant by its grant_type name.
func (e *exchanger) Grant(name string) (grant.Grant, error) {
	return e.grants.Get(name)
}

// build prepares the token request for g: client credentials first, then the
// grant's own parameters and the caller options.
func (e *exchanger) build(ctx context.Context, g grant.Grant, opts grant.Options) (*exchange, error) {
	g, err := grant.Verify(g)
	if err != nil {
		return nil, err
	}

	base := url.Values{
		"client_id":     {e.cfg.ClientID},
		"client_secret": {e.cfg.ClientSecret},
		"redirect_uri":  {e.cfg.RedirectURI},
	}
	params, err := g.PrepareRequestParameters(base, opts)
	if err != nil {
		return nil, ierrors.Wrapf(err, "prepare %s request", g.Name())
	}

	tokenURL := e.TokenURL(params)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to create token request")
	}
	for k, v := range DefaultHeaders() {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	x := &exchange{id: uuid.NewString(), grant: g, req: req}

	log.Debug().
		Str("exchange_id", x.id).
		Str("token_url", tokenURL).
		Str("grant_type", g.Name()).
		Msg("sending token request")

	return x, nil
}

// finish parses and validates resp and builds the access token.
// It closes the response body.
func (e *exchanger) finish(x *exchange, resp *http.Response) (*oauth2.AccessToken, error) {
	parsed, body, err := transport.ParseResponse(resp)
	if err != nil {
		if ierrors.Is(err, transport.ErrUnparseableBody) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		return nil, err
	}

	if err := e.validator.Validate(resp, parsed, body); err != nil {
		log.Warn().
			Str("exchange_id", x.id).
			Str("grant_type", x.grant.Name()).
			Int("status", resp.StatusCode).
			Err(err).
			Msg("token request rejected")
		return nil, err
	}

	token, err := e.createAccessToken(parsed)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("exchange_id", x.id).
		Str("grant_type", x.grant.Name()).
		Bool("has_refresh_token", token.RefreshToken != nil).
		Strs("scopes", token.Scopes).
		Msg("token exchange succeeded")

	return token, nil
}

// createAccessToken normalizes the parsed response. Scopes are read from the
// access token's own claims without verifying its signature.
func (e *exchanger) createAccessToken(parsed map[string]any) (*oauth2.AccessToken, error) {
	token, err := oauth2.NewAccessToken(parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	claims, err := e.decoder.Decode(token.AccessToken)
	if err != nil {
		log.Debug().Err(err).Msg("access token claims not readable, scopes left empty")
		return token, nil
	}
	token.Scopes = jwt.Scopes(claims)
	return token, nil
}
