package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// File holds the bootstrap configuration read once at startup. Unlike
// Settings these values are fixed for the lifetime of the process.
type File struct {
	// CameraID is the capture device index (0 for the default camera).
	CameraID int `mapstructure:"camera_id"`

	// HTTPAddr is the listen address of the settings/catalog API.
	HTTPAddr string `mapstructure:"http_addr"`

	// DBPath is the SQLite file backing the barcode catalog.
	DBPath string `mapstructure:"db_path"`

	// SpeechEngine selects the TTS backend: "espeak", "google" or "off".
	SpeechEngine string `mapstructure:"speech_engine"`

	// SpeechVoice is the voice/language passed to the speech engine
	// (an espeak voice name or an htgo-tts language code).
	SpeechVoice string `mapstructure:"speech_voice"`

	// Language is the Tesseract language code used for OCR.
	Language string `mapstructure:"language"`

	// AudioCacheDir is where the google engine caches synthesized clips.
	AudioCacheDir string `mapstructure:"audio_cache_dir"`
}

// LoadFile reads config.yaml from the given directory (or the working
// directory when dir is empty). A missing file is not an error; the
// defaults below are returned instead.
func LoadFile(dir string) (*File, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetDefault("camera_id", 0)
	v.SetDefault("http_addr", ":5001")
	v.SetDefault("db_path", "shopassist.db")
	v.SetDefault("speech_engine", "espeak")
	v.SetDefault("speech_voice", "en")
	v.SetDefault("language", "eng")
	v.SetDefault("audio_cache_dir", "audio")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &f, nil
}
