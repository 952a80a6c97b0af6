package fields

import (
	"net/url"
	"strings"
)

var opaqueSchemes = []string{"mailto:", "tel:", "javascript:", "data:"}

// CanonicalizeURL normalises an authored URL.
//
// The scheme and host are lowercased, "http" is upgraded to "https",
// default ports and the trailing slash are stripped, and fragments are
// dropped. Path case is preserved. Scheme-less input ("otter.ai/docs")
// is treated as https. Empty or hostless input yields nil.
func CanonicalizeURL(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, "://") {
		lower := strings.ToLower(s)
		for _, scheme := range opaqueSchemes {
			if strings.HasPrefix(lower, scheme) {
				return nil
			}
		}
		s = "https://" + strings.TrimPrefix(s, "//")
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "http" {
		scheme = "https"
	}
	if scheme != "https" && scheme != "ftp" {
		return nil
	}

	host := strings.ToLower(u.Hostname())
	if host == "" || (!strings.Contains(host, ".") && host != "localhost") {
		return nil
	}
	if port := u.Port(); port != "" && port != "80" && port != "443" {
		host += ":" + port
	}

	u.Scheme = scheme
	u.Host = host
	u.User = nil
	u.Fragment = ""
	u.RawFragment = ""
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""

	out := u.String()
	return &out
}
