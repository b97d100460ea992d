// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// # Security Features
//
// The SecureHandler sanitizes sensitive information in log output:
//   - Attributes named like secrets (Authorization, Cookie, password, token)
//   - Secret values detected by pattern matching (JWTs, bearer tokens, keys)
//   - Credentials inside URLs: userinfo passwords and the values of
//     sensitive query parameters such as token, apikey or sid
//
// Archived URLs frequently carry live session identifiers and API keys, so
// URLs are masked even in verbose mode. Only the sensitive parts are
// replaced and the rest of the URL is kept as is.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//
//	logger.Debug("querying",
//	    "url", "https://example.com/a?id=1&token=abc", // token value masked
//	)
//
//	slog.SetDefault(logger)
package log
