// Package database provides SQLite-based run history for waybackrecon.
//
// Every successfully processed domain is recorded with the command that
// produced it, the reported count and the digest of the primary artifact.
// The history command reads these records back to show how a domain's
// archive footprint changed between runs.
//
// SQLite is accessed through the CGO-free modernc.org/sqlite driver. The
// database is a single file in the XDG data directory.
package database
