package dto

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ExtraHeaders type is a comma seperated key=value string defined for use with flag parsing
type ExtraHeaders map[string]string

func (e ExtraHeaders) String() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// Set Value should be a comma seperated key=value string
func (e ExtraHeaders) Set(s string) error {
	for _, header := range strings.Split(s, ",") {
		if strings.TrimSpace(header) == "" {
			continue
		}
		key, value, found := strings.Cut(header, "=")
		if !found {
			return fmt.Errorf("extra header %q: missing '='", header)
		}
		e[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return nil
}

func (e ExtraHeaders) Type() string {
	return "ExtraHeaders"
}

// ApplyMissing copies entries into h for keys h does not already carry.
func (e ExtraHeaders) ApplyMissing(h http.Header) {
	for k, v := range e {
		if h.Get(k) == "" {
			h.Set(k, v)
		}
	}
}
