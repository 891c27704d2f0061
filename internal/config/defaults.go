package config

const (
	defaultBaseURL          = "https://kinopoiskapiunofficial.tech"
	defaultRequestTimeout   = 180
	defaultLogDir           = "~/.local/share/kinosync/logs"
	defaultDatabase         = "~/.local/share/kinosync/library.db"
	defaultLockFile         = "~/.local/share/kinosync/top250.lock"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultTop250MoviesName = "Кинопоиск Топ 250"
	defaultTop250SeriesName = "Кинопоиск Топ 250 (Сериалы)"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Kinopoisk: Kinopoisk{
			BaseURL:        defaultBaseURL,
			RequestTimeout: defaultRequestTimeout,
		},
		Paths: Paths{
			LogDir:   defaultLogDir,
			Database: defaultDatabase,
			LockFile: defaultLockFile,
		},
		Collections: Collections{
			Top250Movies: defaultTop250MoviesName,
			Top250Series: defaultTop250SeriesName,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
