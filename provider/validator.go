package provider

import (
	"net/http"
	"strconv"
	"strings"
)

// ResponseValidator classifies a token endpoint response. Only 200 is success.
type ResponseValidator interface {
	Validate(resp *http.Response, parsed map[string]any, body []byte) error
}

// MessageFieldValidator takes the error message from the "message" field of the body.
type MessageFieldValidator struct{}

// ReasonPhraseValidator takes the error message from the status line reason phrase.
type ReasonPhraseValidator struct{}

var (
	_ ResponseValidator = MessageFieldValidator{}
	_ ResponseValidator = ReasonPhraseValidator{}
)

func (MessageFieldValidator) Validate(resp *http.Response, parsed map[string]any, body []byte) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	message, _ := parsed["message"].(string)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &ProviderError{Message: message, StatusCode: resp.StatusCode, Body: string(body)}
}

func (ReasonPhraseValidator) Validate(resp *http.Response, _ map[string]any, body []byte) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	return &ProviderError{Message: reasonPhrase(resp), StatusCode: resp.StatusCode, Body: string(body)}
}

// reasonPhrase strips the status code from resp.Status ("401 Unauthorized").
func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}

func validatorFor(style ErrorStyle) ResponseValidator {
	if style == ErrorStyleReasonPhrase {
		return ReasonPhraseValidator{}
	}
	return MessageFieldValidator{}
}
