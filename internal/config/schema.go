package config

// Config holds marksheet service configuration.
// Loaded from config.yaml with MARKSHEET_* environment overrides.
type Config struct {
	Server ServerCfg `mapstructure:"server" yaml:"server"`
	OCR    OCRCfg    `mapstructure:"ocr" yaml:"ocr"`
	LLM    LLMCfg    `mapstructure:"llm" yaml:"llm"`
	Limits LimitsCfg `mapstructure:"limits" yaml:"limits"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// OCRCfg configures the local text extraction tools.
type OCRCfg struct {
	TesseractPath string `mapstructure:"tesseract_path" yaml:"tesseract_path"`
	PdftotextPath string `mapstructure:"pdftotext_path" yaml:"pdftotext_path"`
	PdftoppmPath  string `mapstructure:"pdftoppm_path" yaml:"pdftoppm_path"`
	Language      string `mapstructure:"language" yaml:"language"`
	PSM           int    `mapstructure:"psm" yaml:"psm"`
	OEM           int    `mapstructure:"oem" yaml:"oem"`
	// DPI is the rasterization resolution for scanned PDF pages.
	DPI int `mapstructure:"dpi" yaml:"dpi"`
	// MinDirectTextChars is the text-layer length below which a PDF page
	// falls back to OCR.
	MinDirectTextChars int `mapstructure:"min_direct_text_chars" yaml:"min_direct_text_chars"`
}

// LLMCfg configures the structuring model.
type LLMCfg struct {
	Model string `mapstructure:"model" yaml:"model"`
	// APIKey supports ${ENV_VAR} syntax.
	APIKey  string `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	// RateLimit is requests per minute.
	RateLimit      int     `mapstructure:"rate_limit" yaml:"rate_limit"`
	MaxRetries     int     `mapstructure:"max_retries" yaml:"max_retries"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Temperature    float64 `mapstructure:"temperature" yaml:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// LimitsCfg bounds request handling.
type LimitsCfg struct {
	// MaxFileSizeBytes caps a single upload.
	MaxFileSizeBytes int64 `mapstructure:"max_file_size_bytes" yaml:"max_file_size_bytes"`
	// BatchMaxFiles caps how many files one batch request may carry.
	BatchMaxFiles int `mapstructure:"batch_max_files" yaml:"batch_max_files"`
	// BatchConcurrency bounds in-flight documents per batch.
	BatchConcurrency int `mapstructure:"batch_concurrency" yaml:"batch_concurrency"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "0.0.0.0",
			Port: 8000,
		},
		OCR: OCRCfg{
			TesseractPath:      "tesseract",
			PdftotextPath:      "pdftotext",
			PdftoppmPath:       "pdftoppm",
			Language:           "eng",
			PSM:                6,
			OEM:                3,
			DPI:                300,
			MinDirectTextChars: 32,
		},
		LLM: LLMCfg{
			Model:          "gpt-4o-mini",
			APIKey:         "${OPENAI_API_KEY}",
			RateLimit:      60,
			MaxRetries:     3,
			TimeoutSeconds: 120,
			Temperature:    0.1,
			MaxTokens:      4000,
		},
		Limits: LimitsCfg{
			MaxFileSizeBytes: 10 * 1024 * 1024,
			BatchMaxFiles:    5,
			BatchConcurrency: 5,
		},
	}
}

// ResolveAPIKey expands any ${ENV_VAR} reference in the LLM API key.
func (c *Config) ResolveAPIKey() string {
	return ResolveEnvVars(c.LLM.APIKey)
}
