// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps route templates ("METHOD /path") to their required security level.
// Routes not listed require an access token.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"POST /api/auth/register": SecurityPublic,
	"POST /api/auth/login":    SecurityPublic,

	// Catalogues - Public
	"GET /api/events":   SecurityPublic,
	"GET /api/products": SecurityPublic,
	"GET /api/doctors":  SecurityPublic,

	// Operational
	"GET /healthz": SecurityPublic,
	"GET /metrics": SecurityPublic,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(method, pathTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+pathTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
