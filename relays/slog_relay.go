package relays

import (
	"context"
	"log/slog"

	relayDTO "github.com/joy-dx/relay/dto"
)

// SlogRelay forwards relay events to a slog.Logger. Fatal is logged at error
// level with fatal=true and never exits the process.
type SlogRelay struct {
	logger *slog.Logger
}

func NewSlogRelay(logger *slog.Logger) *SlogRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogRelay{logger: logger}
}

func (r *SlogRelay) Debug(data relayDTO.RelayEventInterface) { r.log(slog.LevelDebug, data) }
func (r *SlogRelay) Info(data relayDTO.RelayEventInterface)  { r.log(slog.LevelInfo, data) }
func (r *SlogRelay) Warn(data relayDTO.RelayEventInterface)  { r.log(slog.LevelWarn, data) }
func (r *SlogRelay) Error(data relayDTO.RelayEventInterface) { r.log(slog.LevelError, data) }
func (r *SlogRelay) Meta(data relayDTO.RelayEventInterface)  { r.log(slog.LevelDebug, data) }

func (r *SlogRelay) Fatal(data relayDTO.RelayEventInterface) {
	r.log(slog.LevelError, data, slog.Bool("fatal", true))
}

func (r *SlogRelay) log(level slog.Level, data relayDTO.RelayEventInterface, extra ...slog.Attr) {
	if data == nil {
		return
	}
	ctx := context.Background()
	if !r.logger.Enabled(ctx, level) {
		return
	}
	attrs := []slog.Attr{
		slog.String("channel", string(data.RelayChannel())),
		slog.String("type", string(data.RelayType())),
	}
	attrs = append(attrs, data.ToSlog()...)
	attrs = append(attrs, extra...)
	r.logger.LogAttrs(ctx, level, data.Message(), attrs...)
}
