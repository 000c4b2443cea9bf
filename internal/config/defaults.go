package config

const (
	defaultStateDir      = "~/.local/share/mediasort/state"
	defaultLogDir        = "~/.local/share/mediasort/logs"
	defaultDuplicatesDir = "_duplicates"
	defaultNoDateDir     = "_no_date"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Sorter: Sorter{
			DuplicatesDir: defaultDuplicatesDir,
			NoDateDir:     defaultNoDateDir,
			ExcludeParts:  []string{"_duplicates", "_duplicates_bad"},
		},
		Extensions: Extensions{
			Image: []string{".jpg", ".jpeg", ".png", ".tiff", ".bmp", ".gif", ".cr2", ".nef", ".arw", ".dng"},
			Video: []string{".mp4", ".mov", ".avi", ".mkv", ".mts", ".3gp", ".wmv"},
			EXIF:  []string{".jpg", ".jpeg", ".tiff"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
