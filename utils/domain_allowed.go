package utils

import "strings"

// DomainAllowed applies the blacklist first, then the whitelist when one is
// set. Entries match the host itself or any subdomain of it.
func DomainAllowed(host string, whitelist, blacklist []string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, d := range blacklist {
		if domainMatches(host, d) {
			return false
		}
	}
	if len(whitelist) == 0 {
		return true
	}
	for _, d := range whitelist {
		if domainMatches(host, d) {
			return true
		}
	}
	return false
}

func domainMatches(host, domain string) bool {
	domain = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(domain), "."))
	if domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
