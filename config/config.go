package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Tesseract TesseractConfig
	Upload    UploadConfig
	Batch     BatchConfig
	OCR       OCRConfig
	Log       LogConfig
	Export    ExportConfig
	S3        S3Config
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type TesseractConfig struct {
	DataPath string `mapstructure:"data_path"`
}

type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	MaxFiles      int64 `mapstructure:"max_files"`
}

// MaxFileSize is the per-file upload limit in bytes.
func (u UploadConfig) MaxFileSize() int64 {
	return u.MaxFileSizeMB << 20
}

// multipartOverhead covers part headers, boundaries and the metadata field.
const multipartOverhead = 1 << 20

// MaxRequestSize bounds a whole batch upload: every file at the limit plus
// multipart framing.
func (u UploadConfig) MaxRequestSize() int64 {
	return u.MaxFiles*u.MaxFileSize() + multipartOverhead
}

type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// OCRConfig controls the image fallback for statements without a text layer.
type OCRConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	MinTokens int  `mapstructure:"min_tokens"`
}

type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

type ExportConfig struct {
	Format       string `mapstructure:"format"`
	FilenameLast bool   `mapstructure:"filename_last"`
}

// S3Config holds credentials for fetching s3:// statement references.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

var defaults = map[string]any{
	"server.port":             "8080",
	"tesseract.data_path":     "/usr/share/tesseract-ocr/5/tessdata/",
	"upload.max_file_size_mb": 10,
	"upload.max_files":        20,
	"batch.concurrency":       1,
	"ocr.enabled":             true,
	"ocr.min_tokens":          20,
	"log.verbose":             false,
	"export.format":           "csv",
	"export.filename_last":    false,
	"s3.region":               "us-east-1",
	"s3.endpoint":             "",
	"s3.access_key":           "",
	"s3.secret_key":           "",
}

// LoadConfig reads configuration from environment variables with the
// PAYSTUB_ prefix, e.g. PAYSTUB_BATCH_CONCURRENCY.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAYSTUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	// TESSDATA_PREFIX is what tesseract itself reads; accept it as a fallback.
	if err := v.BindEnv("tesseract.data_path", "PAYSTUB_TESSERACT_DATA_PATH", "TESSDATA_PREFIX"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if cfg.Upload.MaxFiles < 1 {
		cfg.Upload.MaxFiles = 1
	}
	if cfg.Batch.Concurrency < 1 {
		cfg.Batch.Concurrency = 1
	}
	return cfg, nil
}
