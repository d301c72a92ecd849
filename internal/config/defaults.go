package config

const (
	defaultConfigPath        = "~/.config/holdcut/config.toml"
	defaultOutputDir         = "~/holdcut/output"
	defaultLogDir            = "~/.local/share/holdcut/logs"
	defaultHoldTriggerOffset = 2.0
	defaultSubtitleMode      = "sequential"
	defaultMaxWords          = 2
	defaultFont              = "Arial"
	defaultFontSize          = 120
	defaultWordColor         = "white"
	defaultHighlightColor    = "yellow"
	defaultOutlineColor      = "black"
	defaultOutlineWidth      = 2
	defaultWhisperModel      = "base"
	defaultVADMethod         = "silero"
	defaultAudioFormat       = "bestaudio/best"
	defaultAudioCodec        = "mp3"
	defaultAudioQuality      = "192"
	defaultSocketTimeout     = 30
	defaultRetries           = 3
	defaultVideoCodec        = "libx264"
	defaultEncodeAudioCodec  = "aac"
	defaultEncodePreset      = "medium"
	defaultEncodeThreads     = 4
	defaultNtfyTimeout       = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"

	minMaxWords = 1
	maxMaxWords = 20
	minFontSize = 10
	maxFontSize = 200
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:   defaultWorkDir(),
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Timeline: Timeline{
			HoldTriggerOffset: defaultHoldTriggerOffset,
		},
		Subtitles: Subtitles{
			Mode:           defaultSubtitleMode,
			MaxWords:       defaultMaxWords,
			Font:           defaultFont,
			FontSize:       defaultFontSize,
			WordColor:      defaultWordColor,
			HighlightColor: defaultHighlightColor,
			OutlineColor:   defaultOutlineColor,
			OutlineWidth:   defaultOutlineWidth,
		},
		Transcription: Transcription{
			Model:     defaultWhisperModel,
			VADMethod: defaultVADMethod,
		},
		AudioSource: AudioSource{
			Format:        defaultAudioFormat,
			Codec:         defaultAudioCodec,
			Quality:       defaultAudioQuality,
			SocketTimeout: defaultSocketTimeout,
			Retries:       defaultRetries,
		},
		Encode: Encode{
			VideoCodec: defaultVideoCodec,
			AudioCodec: defaultEncodeAudioCodec,
			Preset:     defaultEncodePreset,
			Threads:    defaultEncodeThreads,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
