package presetreq

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/joy-dx/presetreq/client/httpclient"
	"github.com/joy-dx/presetreq/client/s3client"
	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/relays"
)

func (s *NetSvc) State() *dto.NetState {
	s.muTransports.RLock()
	schemes := make([]string, 0, len(s.transports))
	for scheme := range s.transports {
		schemes = append(schemes, scheme)
	}
	s.muTransports.RUnlock()
	slices.Sort(schemes)

	templates := make([]string, 0)
	for name := range s.templates.GetAll() {
		templates = append(templates, name)
	}
	slices.Sort(templates)

	return &dto.NetState{
		ExtraHeaders:     s.cfg.ExtraHeaders,
		RequestTimeout:   s.cfg.RequestTimeout,
		UserAgent:        s.cfg.UserAgent,
		BlacklistDomains: s.cfg.BlacklistDomains,
		WhitelistDomains: s.cfg.WhitelistDomains,
		Schemes:          schemes,
		Templates:        templates,
		RequestsStatus:   s.requestState.GetAll(),
	}
}

// Hydrate registers the default HTTP client for http and https unless a
// transport was already registered for them.
func (s *NetSvc) Hydrate(ctx context.Context) error {
	if s.cfg == nil {
		return errors.New("no net config")
	}
	if s.relay == nil {
		return errors.New("no relay implementation")
	}

	defaultClientCfg := httpclient.DefaultHTTPClientConfig()
	defaultClient := httpclient.NewHTTPClient(httpclient.TransportHTTPRef, s.cfg, &defaultClientCfg)

	s.muTransports.Lock()
	for _, scheme := range []string{"http", "https"} {
		if _, ok := s.transports[scheme]; !ok {
			s.transports[scheme] = defaultClient
		}
	}
	s.muTransports.Unlock()

	s.relay.Debug(relays.RlyNetLog{Msg: "HTTP transport registered"})
	return nil
}

// HydrateS3 serves s3:// URLs through an S3 client built from cfg.
func (s *NetSvc) HydrateS3(cfg *s3client.S3ClientConfig) error {
	if cfg == nil {
		return errors.New("no s3 config")
	}
	client, err := s3client.NewS3Client(s3client.TransportS3Ref, cfg)
	if err != nil {
		return fmt.Errorf("create s3 transport: %w", err)
	}
	s.RegisterTransport("s3", client)
	s.relay.Debug(relays.RlyNetLog{Msg: "S3 transport registered"})
	return nil
}
