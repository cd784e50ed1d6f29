// Package source fetches Sample Frames from the ambient color provider.
package source

import (
	"context"
	"errors"

	"ambilight-agent/internal/model"
)

var (
	// ErrTransport means the provider could not be reached or answered with a non-200 status.
	ErrTransport = errors.New("transport failure")
	// ErrMalformed means the payload could not be decoded at all.
	ErrMalformed = errors.New("malformed payload")
	// ErrSchema means the payload decoded but is missing or has unusable samples.
	ErrSchema = errors.New("schema violation")
)

type Source interface {
	Fetch(ctx context.Context) (model.SampleFrame, error)
}

// Kind classifies err for logs, metrics and the status store.
func Kind(err error) model.ErrorKind {
	switch {
	case errors.Is(err, ErrTransport):
		return model.ErrorTransport
	case errors.Is(err, ErrMalformed):
		return model.ErrorMalformed
	default:
		return model.ErrorSchema
	}
}
