package config

import "fmt"

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	LLM           LLMConfig           `yaml:"llm"`
	Audio         AudioConfig         `yaml:"audio"`
	Paths         PathsConfig         `yaml:"paths"`
	Store         StoreConfig         `yaml:"store"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
	Output        OutputConfig        `yaml:"output"`
}

type TranscriptionConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutMinutes int    `yaml:"timeout_minutes"`
}

type LLMConfig struct {
	APIKeys          []string `yaml:"api_keys"`
	Model            string   `yaml:"model"`
	EnableFormatting *bool    `yaml:"enable_formatting"`
	Temperature      float64  `yaml:"temperature"`
	TimeoutMinutes   int      `yaml:"timeout_minutes"`
}

type AudioConfig struct {
	ChunkMinutes int    `yaml:"chunk_minutes"`
	FFmpegPath   string `yaml:"ffmpeg_path"`
	FFprobePath  string `yaml:"ffprobe_path"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
	Watch  string `yaml:"watch"`
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrentChunks int `yaml:"max_concurrent_chunks"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

// AllowedExtensions is the audio container allow-list accepted by the
// transcription service.
var AllowedExtensions = []string{".wav", ".mp3", ".mp4", ".mpeg", ".mpga", ".m4a", ".webm"}

func (c *Config) Validate() error {
	if c.Transcription.APIKey == "" {
		return fmt.Errorf("transcription.api_key is required")
	}
	if len(c.LLM.APIKeys) == 0 {
		return fmt.Errorf("llm.api_keys is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = "https://api.openai.com/v1"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "gpt-4o-transcribe-diarize"
	}
	if c.Transcription.TimeoutMinutes == 0 {
		c.Transcription.TimeoutMinutes = 30
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.EnableFormatting == nil {
		enabled := true
		c.LLM.EnableFormatting = &enabled
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.TimeoutMinutes == 0 {
		c.LLM.TimeoutMinutes = 10
	}
	if c.Audio.ChunkMinutes == 0 {
		c.Audio.ChunkMinutes = 20
	}
	if c.Audio.FFmpegPath == "" {
		c.Audio.FFmpegPath = "ffmpeg"
	}
	if c.Audio.FFprobePath == "" {
		c.Audio.FFprobePath = "ffprobe"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Store.Enabled && c.Store.Path == "" {
		c.Store.Path = "data/meetscribe.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrentChunks == 0 {
		c.Performance.MaxConcurrentChunks = 2
	}

	return nil
}

// FormattingEnabled reports whether the LLM dialogue formatting pass is on.
func (c *Config) FormattingEnabled() bool {
	return c.LLM.EnableFormatting == nil || *c.LLM.EnableFormatting
}
