package presetreq

import (
	"github.com/joy-dx/lockablemap"
	"github.com/joy-dx/presetreq/config"
	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/relays"
)

// NewNetSvc builds a service and its root template. Transports are added by
// Hydrate (http, https) or RegisterTransport.
func NewNetSvc(cfg *config.NetSvcConfig) *NetSvc {
	if cfg == nil {
		c := config.DefaultNetSvcConfig()
		cfg = &c
	}
	s := &NetSvc{
		cfg:            cfg,
		relay:          cfg.Relay(),
		transports:     make(map[string]dto.Transport),
		templates:      lockablemap.NewLockableMap[string, *Template](),
		requestState:   lockablemap.NewLockableMap[string, dto.RequestNotification](),
		listenersByURL: make(map[string][]chan dto.RequestNotification),
	}
	s.root = NewTemplate(s, PresetSpec{}, WithRelay(s.relay), WithObserver(s))
	cfg.Relay().Debug(relays.RlyNetLog{Msg: "Net service started"})
	return s
}
