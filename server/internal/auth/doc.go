// Package auth provides authentication middleware for the scoring server.
//
// APIKey(mode, header, key, open...) returns HTTP middleware that validates
// the API key from the named request header.
//
// When mode != "apikey" or key == "", all requests pass through (useful for
// local development with auth disabled). When the key is incorrect or absent,
// the middleware responds 401 with a JSON error body. Paths listed in open
// (the health probe) are never checked.
package auth
