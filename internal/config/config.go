package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "waybackrecon"

	// DefaultCDXURL is the public Wayback Machine CDX search API.
	DefaultCDXURL = "http://web.archive.org/cdx/search/cdx"

	// DefaultTimeout bounds one CDX request. The index can take a while to
	// answer for large domains, but a stalled request must not hang the run.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies waybackrecon in CDX requests.
	DefaultUserAgent = "waybackrecon/1.0 (+https://github.com/nao1215/waybackrecon)"

	// DefaultOutputDir is the directory under which per-domain output
	// directories are created.
	DefaultOutputDir = "."
)

// Flag names that can also be set from the configuration file.
// ApplyFile uses them to decide whether a file value may override
// the current one.
const (
	FlagCDXURL    = "cdx-url"
	FlagTimeout   = "timeout"
	FlagUserAgent = "user-agent"
	FlagProxy     = "proxy"
	FlagOutputDir = "output-dir"
)

// Config holds all configuration options for waybackrecon.
// It is populated from CLI flags and the optional config file and passed
// through the application rather than kept in global state.
type Config struct {
	// CDXURL is the CDX search endpoint queried by collect.
	CDXURL string

	// Timeout is the per-request timeout for the CDX index.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent to the CDX index.
	UserAgent string

	// ProxyAddress routes CDX requests through a SOCKS5 proxy ("host:port").
	// Empty means a direct connection.
	ProxyAddress string

	// OutputDir is the directory that holds the per-domain directories.
	OutputDir string

	// Verbose enables debug logging.
	Verbose bool

	// NoColor disables colored progress prefixes.
	NoColor bool

	// LogJSON switches diagnostic logs on stderr to JSON lines.
	LogJSON bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, .waybackrecon is searched in the current directory
	// and then in the user's home directory, falling back to config.yaml
	// in the XDG config directory.
	ConfigFilePath string

	// DBDir is the directory holding the run history database.
	// Defaults to XDG data directory (~/.local/share/waybackrecon on Linux).
	DBDir string

	// SaveToDB records each run in the history database.
	SaveToDB bool

	// SummaryFile is where the run summary is written. Empty disables it.
	SummaryFile string

	// JSONSummary writes the run summary as JSON.
	// Mutually exclusive with MarkdownSummary.
	JSONSummary bool

	// MarkdownSummary writes the run summary as Markdown. This is the
	// default format when SummaryFile is set and neither format is chosen.
	MarkdownSummary bool

	// DomainsFile is the path of the domain list file.
	DomainsFile string

	// Domains is the list of domains to process, in file order.
	Domains []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		CDXURL:    DefaultCDXURL,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		OutputDir: DefaultOutputDir,
		DBDir:     XDGDataDir(),
		SaveToDB:  true,
	}
}

// XDGDataDir returns the XDG data directory for waybackrecon.
// On Linux: ~/.local/share/waybackrecon
// On macOS: ~/Library/Application Support/waybackrecon
// On Windows: %LOCALAPPDATA%\waybackrecon
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for waybackrecon.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ApplyFile copies values from the configuration file into c.
// A value is skipped when the file leaves it empty or when isSet reports
// that the corresponding flag was given on the command line.
// isSet may be nil, in which case every file value is applied.
func (c *Config) ApplyFile(f *File, isSet func(flag string) bool) error {
	if f == nil {
		return nil
	}
	if isSet == nil {
		isSet = func(string) bool { return false }
	}

	if f.CDXURL != "" && !isSet(FlagCDXURL) {
		c.CDXURL = f.CDXURL
	}
	if f.Timeout != "" && !isSet(FlagTimeout) {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, f.Timeout)
		}
		c.Timeout = d
	}
	if f.UserAgent != "" && !isSet(FlagUserAgent) {
		c.UserAgent = f.UserAgent
	}
	if f.Proxy != "" && !isSet(FlagProxy) {
		c.ProxyAddress = f.Proxy
	}
	if f.OutputDir != "" && !isSet(FlagOutputDir) {
		c.OutputDir = f.OutputDir
	}
	return nil
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if len(c.Domains) == 0 {
		return ErrNoDomains
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.JSONSummary && c.MarkdownSummary {
		return ErrConflictingSummaryFormats
	}

	return nil
}
