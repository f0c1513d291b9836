package config

const (
	defaultClipsDir        = "~/.local/share/vadcut/clips"
	defaultLogDir          = "~/.local/share/vadcut/logs"
	defaultCatalogPath     = "~/.local/share/vadcut/catalog.db"
	defaultWorkDir         = "~/.cache/vadcut"
	defaultFrameMs         = 30
	defaultPaddingMs       = 300
	defaultEngine          = "webrtc"
	defaultAggressiveness  = 2
	defaultEnergyThreshold = 0.05
	defaultMinSeconds      = 5
	defaultMaxSeconds      = 15
	defaultNamePrefix      = "clip"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ClipsDir:    defaultClipsDir,
			LogDir:      defaultLogDir,
			CatalogPath: defaultCatalogPath,
			WorkDir:     defaultWorkDir,
		},
		VAD: VAD{
			FrameMs:         defaultFrameMs,
			PaddingMs:       defaultPaddingMs,
			Engine:          defaultEngine,
			Aggressiveness:  defaultAggressiveness,
			EnergyThreshold: defaultEnergyThreshold,
		},
		Clips: Clips{
			MinSeconds: defaultMinSeconds,
			MaxSeconds: defaultMaxSeconds,
			NamePrefix: defaultNamePrefix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
