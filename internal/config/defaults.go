package config

const (
	defaultDataDir     = "~/.local/share/pressline"
	defaultExportDir   = "~/.local/share/pressline/exports"
	defaultLogDir      = "~/.local/share/pressline/logs"
	defaultLanguage    = "English"
	defaultTerritories = "Worldwide"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			ExportDir: defaultExportDir,
			LogDir:    defaultLogDir,
		},
		Distribution: Distribution{
			Language:    defaultLanguage,
			Territories: defaultTerritories,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
