package netutil

import (
	"net"
	"strings"
)

// SplitHostZone splits an IPv6 scoped address into its host and zone parts.
func SplitHostZone(s string) (host, zone string) {
	// The IPv6 scoped addressing zone identifier starts after the last percent sign.
	if i := strings.LastIndexByte(s, '%'); i > 0 {
		host, zone = s[:i], s[i+1:]
	} else {
		host = s
	}
	return
}

// RemoteHost returns the host part of a "host:port" remote address, without port nor IPv6 zone.
// An address without port is returned as is. It returns an empty string if addr is not a valid IP.
func RemoteHost(addr string) string {
	if addr == "" {
		return ""
	}
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	host, _ = SplitHostZone(host)
	if net.ParseIP(host) == nil {
		return ""
	}
	return host
}

// FirstForwarded returns the left-most valid IP of a comma separated X-Forwarded-For value, or an empty
// string if there is none.
func FirstForwarded(value string) string {
	for _, part := range strings.Split(value, ",") {
		if ip := RemoteHost(strings.TrimSpace(part)); ip != "" {
			return ip
		}
	}
	return ""
}
