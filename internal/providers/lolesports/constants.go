package lolesports

import "time"

const (
	defaultBaseURL     = "https://esports-api.lolesports.com/persisted/gw"
	defaultLocale      = "en-US"
	defaultHTTPTimeout = 10 * time.Second
	maxErrorBody       = 512

	headerAPIKey = "x-api-key"
)
