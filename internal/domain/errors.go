package domain

import "errors"

var (
	// ErrMissingAPIKey indicates the configured LLM provider requires a credential
	ErrMissingAPIKey = errors.New("llm api key is not set")
)
