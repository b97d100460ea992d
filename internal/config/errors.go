package config

import "errors"

// Configuration validation errors.
// They are returned by Config.Validate and the loaders so that callers can
// use errors.Is for programmatic handling.
var (
	// ErrNoDomains is returned when the domain list file holds no domains.
	ErrNoDomains = errors.New("no domains found in input file")

	// ErrInvalidTimeout is returned when the timeout is not positive or
	// the configuration file holds an unparsable duration.
	ErrInvalidTimeout = errors.New("invalid timeout: must be a positive duration")

	// ErrConflictingSummaryFormats is returned when both --json and --markdown
	// are specified. Only one summary format can be used at a time.
	ErrConflictingSummaryFormats = errors.New("conflicting summary formats: --json and --markdown cannot be used together")

	// ErrDomainsFile is returned when the domain list file cannot be read.
	ErrDomainsFile = errors.New("cannot read domains file")
)
