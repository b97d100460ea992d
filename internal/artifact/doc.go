// Package artifact persists per-domain line lists to disk.
//
// Artifacts are addressed by a domain and an artifact name. The file store
// lays them out as <base>/<domain>/<name>, one record per line, and the same
// store is used to read a previously collected URL list back for the
// endpoint and parameter commands.
package artifact
