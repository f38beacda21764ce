package config

import (
	"log/slog"
	"time"

	"github.com/joy-dx/presetreq/dto"
	"github.com/joy-dx/presetreq/relays"
	relayDTO "github.com/joy-dx/relay/dto"
)

// NetSvcConfig holds service-wide transport defaults.
type NetSvcConfig struct {
	// ExtraHeaders added to every HTTP request that does not already carry them
	ExtraHeaders     dto.ExtraHeaders `json:"net_extra_headers,omitempty" yaml:"net_extra_headers,omitempty"`
	RequestTimeout   time.Duration    `json:"net_request_timeout,omitempty" yaml:"net_request_timeout,omitempty"`
	UserAgent        string           `json:"net_user_agent,omitempty" yaml:"net_user_agent,omitempty"`
	BlacklistDomains []string         `json:"net_blacklist_domains,omitempty" yaml:"net_blacklist_domains,omitempty"`
	WhitelistDomains []string         `json:"net_whitelist_domains,omitempty" yaml:"net_whitelist_domains,omitempty"`
	relay            relayDTO.RelayInterface
}

func DefaultNetSvcConfig() NetSvcConfig {
	return NetSvcConfig{
		ExtraHeaders:     dto.ExtraHeaders{},
		RequestTimeout:   30 * time.Second,
		UserAgent:        "presetreq",
		BlacklistDomains: []string{},
		WhitelistDomains: []string{},
		relay:            relays.NewSlogRelay(slog.Default()),
	}
}

// Relay returns the configured relay, falling back to a slog relay.
func (c *NetSvcConfig) Relay() relayDTO.RelayInterface {
	if c.relay == nil {
		c.relay = relays.NewSlogRelay(slog.Default())
	}
	return c.relay
}

func (c *NetSvcConfig) WithRelay(relay relayDTO.RelayInterface) *NetSvcConfig {
	c.relay = relay
	return c
}

func (c *NetSvcConfig) WithExtraHeaders(headers dto.ExtraHeaders) *NetSvcConfig {
	c.ExtraHeaders = headers
	return c
}

func (c *NetSvcConfig) WithRequestTimeout(timeout time.Duration) *NetSvcConfig {
	c.RequestTimeout = timeout
	return c
}

func (c *NetSvcConfig) WithUserAgent(userAgent string) *NetSvcConfig {
	c.UserAgent = userAgent
	return c
}

func (c *NetSvcConfig) WithBlacklistDomains(domains ...string) *NetSvcConfig {
	c.BlacklistDomains = append(c.BlacklistDomains, domains...)
	return c
}

func (c *NetSvcConfig) WithWhitelistDomains(domains ...string) *NetSvcConfig {
	c.WhitelistDomains = append(c.WhitelistDomains, domains...)
	return c
}
