package utils

// DefaultHeaders returns the default request headers sent with every
// outbound HTTP call, merged with any custom headers.
func DefaultHeaders(userAgent string, customHeaders map[string]string) map[string]string {
	headers := map[string]string{
		"User-Agent": userAgent,
		"Accept":     "application/json, text/html",
	}

	for key, value := range customHeaders {
		headers[key] = value
	}

	return headers
}
