package addlist

import "errors"

var (
	ErrNoPubSub        = errors.New("pubsub not configured")
	ErrContextNotFound = errors.New("context not found")
	ErrActionNotFound  = errors.New("action not found")
)
