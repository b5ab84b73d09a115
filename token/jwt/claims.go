package jwt

import (
	"errors"
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/instantgame-oauth2/internal/utils"
)

var ErrNotAJWT = errors.New("token is not a JWT")

// ClaimsDecoder reads the claim set of a signed token.
type ClaimsDecoder interface {
	Decode(rawToken string) (jwtlib.MapClaims, error)
}

// UnverifiedDecoder decodes a JWT claim set without checking its signature.
// The token is trusted because it arrived over the TLS channel of the token endpoint.
type UnverifiedDecoder struct {
	parser *jwtlib.Parser
}

var _ ClaimsDecoder = UnverifiedDecoder{}

func NewUnverifiedDecoder() UnverifiedDecoder {
	return UnverifiedDecoder{parser: jwtlib.NewParser()}
}

// Decode parses rawToken unverified and returns its claims.
func (d UnverifiedDecoder) Decode(rawToken string) (jwtlib.MapClaims, error) {
	if strings.Count(rawToken, ".") != 2 {
		return nil, ErrNotAJWT
	}

	parser := d.parser
	if parser == nil {
		parser = jwtlib.NewParser()
	}

	token, _, err := parser.ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}
	return claims, nil
}

// Scopes extracts the "scopes" claim. A space separated string is split,
// an array keeps its string elements. Returns nil when the claim is absent.
func Scopes(claims jwtlib.MapClaims) []string {
	switch v := claims["scopes"].(type) {
	case []any:
		return utils.ToStringSlice(v)
	case []string:
		return v
	case string:
		return strings.Fields(v)
	}
	return nil
}
