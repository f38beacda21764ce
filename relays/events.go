package relays

import (
	"log/slog"

	"github.com/joy-dx/presetreq/dto"
	relayDTO "github.com/joy-dx/relay/dto"
)

const RelayNetChannel relayDTO.EventChannel = "net"

const (
	RlyNetLogRef      relayDTO.EventRef = "net.log"
	RlyNetRequestRef  relayDTO.EventRef = "net.request"
	RlyNetCallbackRef relayDTO.EventRef = "net.callback"
)

// RlyNetLog free-form service message
type RlyNetLog struct {
	Msg string `json:"msg" yaml:"msg"`
}

func (e RlyNetLog) RelayChannel() relayDTO.EventChannel { return RelayNetChannel }
func (e RlyNetLog) RelayType() relayDTO.EventRef        { return RlyNetLogRef }
func (e RlyNetLog) Message() string                     { return e.Msg }
func (e RlyNetLog) ToSlog() []slog.Attr                 { return nil }

// RlyNetRequest request lifecycle update emitted by the dispatcher
type RlyNetRequest struct {
	RequestID  string            `json:"request_id" yaml:"request_id"`
	Method     string            `json:"method" yaml:"method"`
	URL        string            `json:"url" yaml:"url"`
	Status     dto.RequestStatus `json:"status" yaml:"status"`
	StatusCode int               `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Msg        string            `json:"msg,omitempty" yaml:"msg,omitempty"`
}

func (e RlyNetRequest) RelayChannel() relayDTO.EventChannel { return RelayNetChannel }
func (e RlyNetRequest) RelayType() relayDTO.EventRef        { return RlyNetRequestRef }
func (e RlyNetRequest) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Method + " " + e.URL
}
func (e RlyNetRequest) ToSlog() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("request_id", e.RequestID),
		slog.String("method", e.Method),
		slog.String("url", e.URL),
		slog.String("status", string(e.Status)),
	}
	if e.StatusCode != 0 {
		attrs = append(attrs, slog.Int("status_code", e.StatusCode))
	}
	return attrs
}

// RlyNetCallback reports a status callback that did not complete normally
type RlyNetCallback struct {
	RequestID  string `json:"request_id" yaml:"request_id"`
	Name       string `json:"name" yaml:"name"`
	StatusCode int    `json:"status_code" yaml:"status_code"`
	Msg        string `json:"msg" yaml:"msg"`
}

func (e RlyNetCallback) RelayChannel() relayDTO.EventChannel { return RelayNetChannel }
func (e RlyNetCallback) RelayType() relayDTO.EventRef        { return RlyNetCallbackRef }
func (e RlyNetCallback) Message() string                     { return e.Msg }
func (e RlyNetCallback) ToSlog() []slog.Attr {
	return []slog.Attr{
		slog.String("request_id", e.RequestID),
		slog.String("callback", e.Name),
		slog.Int("status_code", e.StatusCode),
	}
}
