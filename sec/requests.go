package sec

// ExtractBearerToken pulls the token out of an Authorization header,
// "" when the header is not a bearer scheme.
func ExtractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
