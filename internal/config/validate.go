package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"holdcut/internal/subtitle"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateTimeline(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateAudioSource(); err != nil {
		return err
	}
	if err := c.validateEncode(); err != nil {
		return err
	}
	return c.validateNotifications()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		return errors.New("paths.work_dir must be set")
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateTimeline() error {
	offset := c.Timeline.HoldTriggerOffset
	if math.IsNaN(offset) || math.IsInf(offset, 0) || offset < 0 {
		return errors.New("timeline.hold_trigger_offset must be a non-negative number of seconds")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MaxWords < minMaxWords || c.Subtitles.MaxWords > maxMaxWords {
		return fmt.Errorf("subtitles.max_words must be between %d and %d", minMaxWords, maxMaxWords)
	}
	if c.Subtitles.FontSize < minFontSize || c.Subtitles.FontSize > maxFontSize {
		return fmt.Errorf("subtitles.font_size must be between %d and %d", minFontSize, maxFontSize)
	}
	if c.Subtitles.OutlineWidth < 0 {
		return errors.New("subtitles.outline_width must be >= 0")
	}
	for key, value := range map[string]string{
		"subtitles.word_color":      c.Subtitles.WordColor,
		"subtitles.highlight_color": c.Subtitles.HighlightColor,
		"subtitles.outline_color":   c.Subtitles.OutlineColor,
	} {
		if _, err := subtitle.ParseColor(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.VADMethod {
	case "silero", "pyannote":
	default:
		return fmt.Errorf("transcription.vad_method must be silero or pyannote, got %q", c.Transcription.VADMethod)
	}
	if c.Transcription.VADMethod == "pyannote" && c.Transcription.HFToken == "" {
		return errors.New("transcription.hf_token must be set when transcription.vad_method is pyannote (or set HF_TOKEN)")
	}
	return nil
}

func (c *Config) validateAudioSource() error {
	if err := ensurePositiveMap(map[string]int{
		"audio_source.socket_timeout": c.AudioSource.SocketTimeout,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEncode() error {
	if strings.TrimSpace(c.Encode.VideoCodec) == "" || strings.TrimSpace(c.Encode.AudioCodec) == "" {
		return errors.New("encode.video_codec and encode.audio_codec must be set")
	}
	return ensurePositiveMap(map[string]int{
		"encode.threads": c.Encode.Threads,
	})
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

func (c *Config) validateNotifications() error {
	topic := strings.TrimSpace(c.Notifications.NtfyTopic)
	if topic == "" {
		return nil
	}
	parsed, err := url.Parse(topic)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("notifications.ntfy_topic must be an http(s) URL, got %q", topic)
	}
	return ensurePositiveMap(map[string]int{
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	})
}
