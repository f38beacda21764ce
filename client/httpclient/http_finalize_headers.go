package httpclient

import (
	"github.com/joy-dx/presetreq/config"
	"github.com/joy-dx/presetreq/dto"
)

// FinalizeHeaders applies service defaults exactly once per attempt, after
// middleware ran. Values already present on the request always win.
func (r *HTTPRequest) FinalizeHeaders(netCfg *config.NetSvcConfig) {
	if netCfg != nil {
		netCfg.ExtraHeaders.ApplyMissing(r.Headers)
		if netCfg.UserAgent != "" && r.Header("User-Agent") == "" {
			r.SetHeader("User-Agent", netCfg.UserAgent)
		}
	}

	if r.Header("Content-Type") != "" || len(r.BodyBytes) == 0 {
		return
	}
	switch r.Format {
	case dto.FormatJSON:
		r.SetHeader("Content-Type", dto.ContentTypeJSON)
	case dto.FormatText:
		r.SetHeader("Content-Type", dto.ContentTypeForm)
	}
}
