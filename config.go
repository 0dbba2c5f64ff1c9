package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrSiteTitleRequired       = runtimeconfig.ErrSiteTitleRequired
	ErrOutputDirRequired       = runtimeconfig.ErrOutputDirRequired
	ErrCollectionNameRequired  = runtimeconfig.ErrCollectionNameRequired
	ErrCollectionDirRequired   = runtimeconfig.ErrCollectionDirRequired
	ErrCollectionNameDuplicate = runtimeconfig.ErrCollectionNameDuplicate
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	SiteConfig       = runtimeconfig.SiteConfig
	CollectionConfig = runtimeconfig.CollectionConfig
	OutputConfig     = runtimeconfig.OutputConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

// DefaultConfig returns the configuration used when no site file overrides
// are present.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromFile loads a YAML site configuration, merging it over defaults.
func ConfigFromFile(path string) (Config, error) {
	return runtimeconfig.FromFile(path)
}
