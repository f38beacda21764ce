package dto

import (
	"context"
)

// Transport performs one outgoing request. Implementations are expected to
// return a transport error only when no response could be obtained; any
// status code, including 4xx/5xx, is a successful round trip.
type Transport interface {
	Ref() string
	Send(ctx context.Context, out *Outgoing) (Response, error)
}

// TransportFunc adapts a plain function to Transport.
type TransportFunc func(ctx context.Context, out *Outgoing) (Response, error)

func (f TransportFunc) Ref() string { return "transport.func" }

func (f TransportFunc) Send(ctx context.Context, out *Outgoing) (Response, error) {
	return f(ctx, out)
}

// AuthProvider defines methods for non-OAuth authentication schemes.
// Returned TokenInfo may include cookies or access tokens.
type AuthProvider interface {
	Authenticate(ctx context.Context) (TokenInfo, error)
	Refresh(ctx context.Context, old TokenInfo) (TokenInfo, error)
}

// RequestObserver receives lifecycle notifications for dispatched requests.
type RequestObserver interface {
	ObserveRequest(n RequestNotification)
}
