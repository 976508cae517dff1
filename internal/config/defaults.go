package config

// LogFileName is the file created inside paths.log_dir.
const LogFileName = "img2gif.log"

const (
	defaultHistoryDB          = "~/.local/share/img2gif/history.db"
	defaultLogDir             = "~/.local/share/img2gif/logs"
	defaultFFmpegBinary       = "ffmpeg"
	defaultFFprobeBinary      = "ffprobe"
	defaultIntermediateName   = "temp.mp4"
	defaultIntermediateCodec  = "png"
	defaultPadColor           = "ffffff00"
	defaultLockTimeoutSeconds = 30
	defaultFormat             = "gif"
	defaultMaxFileSizeMB      = 2000
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultNotifyTimeout      = 10
)

// Default returns a Config populated with repository defaults. Binary paths
// and the work directory stay empty so environment fallbacks can apply
// during normalization.
func Default() Config {
	return Config{
		Paths: Paths{
			HistoryDB: defaultHistoryDB,
			LogDir:    defaultLogDir,
		},
		Engine: Engine{
			IntermediateName:   defaultIntermediateName,
			IntermediateCodec:  defaultIntermediateCodec,
			PadColor:           defaultPadColor,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
		},
		Conversion: Conversion{
			DefaultFormat: defaultFormat,
			MaxFileSizeMB: defaultMaxFileSizeMB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNotifyTimeout,
			NotifyFailures:        true,
		},
	}
}
