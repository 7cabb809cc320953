package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/esports-hub-service/internal/providers"
)

const defaultProviderName = "provider"

// normalizeProviderName yields the provider label used in retry metrics and logs. An empty
// configured name falls back to the source's package, so *lolesports.Client becomes "lolesports".
func normalizeProviderName(raw string, source providers.Source) string {
	if name := strings.TrimSpace(raw); name != "" {
		return strings.ToLower(name)
	}
	if source == nil {
		return defaultProviderName
	}
	typeName := strings.TrimLeft(fmt.Sprintf("%T", source), "*")
	if pkg, _, ok := strings.Cut(typeName, "."); ok && pkg != "" {
		return strings.ToLower(pkg)
	}
	return strings.ToLower(typeName)
}
