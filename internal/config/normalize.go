package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"

	"holdcut/internal/subtitle"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSubtitles(); err != nil {
		return err
	}
	if err := c.normalizeTranscription(); err != nil {
		return err
	}
	c.normalizeAudioSource()
	c.normalizeEncode()
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyTimeout
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir()
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSubtitles() error {
	mode, err := subtitle.ParseMode(c.Subtitles.Mode)
	if err != nil {
		return fmt.Errorf("subtitles.mode: %w", err)
	}
	c.Subtitles.Mode = mode.String()
	c.Subtitles.Font = strings.TrimSpace(c.Subtitles.Font)
	if c.Subtitles.Font == "" {
		c.Subtitles.Font = defaultFont
	}
	c.Subtitles.WordColor = normalizeColor(c.Subtitles.WordColor, defaultWordColor)
	c.Subtitles.HighlightColor = normalizeColor(c.Subtitles.HighlightColor, defaultHighlightColor)
	c.Subtitles.OutlineColor = normalizeColor(c.Subtitles.OutlineColor, defaultOutlineColor)
	return nil
}

func normalizeColor(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

func (c *Config) normalizeTranscription() error {
	c.Transcription.Model = strings.TrimSpace(c.Transcription.Model)
	if c.Transcription.Model == "" {
		c.Transcription.Model = defaultWhisperModel
	}
	c.Transcription.VADMethod = strings.ToLower(strings.TrimSpace(c.Transcription.VADMethod))
	if c.Transcription.VADMethod == "" {
		c.Transcription.VADMethod = defaultVADMethod
	}
	c.Transcription.HFToken = strings.TrimSpace(c.Transcription.HFToken)
	for _, key := range []string{"HUGGING_FACE_HUB_TOKEN", "HF_TOKEN"} {
		if c.Transcription.HFToken != "" {
			break
		}
		c.Transcription.HFToken = strings.TrimSpace(os.Getenv(key))
	}
	lang := strings.TrimSpace(c.Transcription.Language)
	if lang == "" {
		c.Transcription.Language = ""
		return nil
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("transcription.language: %w", err)
	}
	base, _ := tag.Base()
	c.Transcription.Language = base.String()
	return nil
}

func (c *Config) normalizeAudioSource() {
	c.AudioSource.Format = strings.TrimSpace(c.AudioSource.Format)
	if c.AudioSource.Format == "" {
		c.AudioSource.Format = defaultAudioFormat
	}
	c.AudioSource.Codec = strings.ToLower(strings.TrimSpace(c.AudioSource.Codec))
	if c.AudioSource.Codec == "" {
		c.AudioSource.Codec = defaultAudioCodec
	}
	c.AudioSource.Quality = strings.TrimSpace(c.AudioSource.Quality)
	if c.AudioSource.Quality == "" {
		c.AudioSource.Quality = defaultAudioQuality
	}
	if c.AudioSource.SocketTimeout <= 0 {
		c.AudioSource.SocketTimeout = defaultSocketTimeout
	}
	if c.AudioSource.Retries < 0 {
		c.AudioSource.Retries = 0
	}
}

func (c *Config) normalizeEncode() {
	c.Encode.VideoCodec = strings.TrimSpace(c.Encode.VideoCodec)
	if c.Encode.VideoCodec == "" {
		c.Encode.VideoCodec = defaultVideoCodec
	}
	c.Encode.AudioCodec = strings.TrimSpace(c.Encode.AudioCodec)
	if c.Encode.AudioCodec == "" {
		c.Encode.AudioCodec = defaultEncodeAudioCodec
	}
	c.Encode.Preset = strings.TrimSpace(c.Encode.Preset)
	if c.Encode.Preset == "" {
		c.Encode.Preset = defaultEncodePreset
	}
	if c.Encode.Threads < 0 {
		c.Encode.Threads = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
