// Package middleware provides chi middleware used by the node REST server.
package middleware

import (
	"net"
	"net/http"

	"go.uber.org/zap"
)

const forbiddenMessage = "Internal subnet access violation"

// TrustedNetHandler restricts access to clients coming from a trusted subnet.
type TrustedNetHandler struct {
	Resolved bool
	IP       net.IP
	IPNet    *net.IPNet
}

// NewTrustedNetHandler initializes a new trusted network handler. An empty or malformed subnet
// yields a handler rejecting every request.
func NewTrustedNetHandler(subnet string) *TrustedNetHandler {
	ip, ipnet, err := net.ParseCIDR(subnet)
	if err != nil {
		zap.L().Warn("trusted network was not initialized", zap.String("subnet", subnet), zap.Error(err))
		return &TrustedNetHandler{}
	}
	return &TrustedNetHandler{
		Resolved: true,
		IP:       ip,
		IPNet:    ipnet,
	}
}

// TrustedNetworkHandler passes requests whose remote address belongs to the trusted subnet.
// Forwarding headers are client controlled and never consulted.
func (tn *TrustedNetHandler) TrustedNetworkHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !tn.Resolved || !tn.trusted(r) {
			http.Error(w, forbiddenMessage, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (tn *TrustedNetHandler) trusted(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && tn.IPNet.Contains(ip)
}
