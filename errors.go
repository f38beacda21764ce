package presetreq

import "errors"

var (
	// ErrURLRequired is returned by every send when no URL was set.
	ErrURLRequired = errors.New("url is required")
	// ErrTransport wraps any error returned by the transport.
	ErrTransport = errors.New("transport failed")
	// ErrNoTransport the template has no transport, or no transport serves the URL scheme
	ErrNoTransport = errors.New("no transport")
	ErrPrepare     = errors.New("prepare failed")
	ErrTransform   = errors.New("transform failed")
	// ErrHeader wraps a panic raised by a HeaderFunc.
	ErrHeader = errors.New("header evaluation failed")

	ErrTemplateNotFound = errors.New("template not found")
)
