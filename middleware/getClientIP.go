package middleware

import (
	"github.com/gin-gonic/gin"
)

// TrustProxies limits which direct peers may set the client address through
// X-Forwarded-For or X-Real-IP. With no proxies configured the headers are ignored
// and the socket address is used.
func TrustProxies(r *gin.Engine, proxies []string) error {
	r.RemoteIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}
	if len(proxies) == 0 {
		return r.SetTrustedProxies(nil)
	}
	return r.SetTrustedProxies(proxies)
}

// getClientIP is the address rate limits and request logs are keyed by.
func getClientIP(c *gin.Context) string {
	return c.ClientIP()
}
