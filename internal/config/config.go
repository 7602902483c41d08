// Package config loads the keyword and output-format catalogs that seed the
// prompt-building surface. The catalogs are plain JSON files; any load
// failure falls back to built-in defaults so the application always has a
// working keyword set.
package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the keyword lists and category labels offered to users.
type Config struct {
	Keywords   map[string][]string `mapstructure:"keywords" json:"keywords"`
	Categories []string            `mapstructure:"categories" json:"categories"`
}

// FormatCategory groups output formats in the catalog.
type FormatCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OutputFormat describes one entry of the output-format catalog.
type OutputFormat struct {
	FormatID    string   `json:"format_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Template    string   `json:"template"`
	Keywords    []string `json:"keywords"`
}

// OutputFormatCatalog is the full output-format configuration document.
type OutputFormatCatalog struct {
	Categories map[string]FormatCategory `json:"categories"`
	Formats    map[string]OutputFormat   `json:"formats"`
}

// Loader reads catalog files from a data directory with viper, caching the
// parsed result until Reload is called.
type Loader struct {
	dataDir string
	v       *viper.Viper
	logger  *slog.Logger

	config *Config
}

// NewLoader creates a loader for the given data directory.
func NewLoader(dataDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dataDir)
	v.SetEnvPrefix("PROMPTFORGE")
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("keywords", defaults.Keywords)
	v.SetDefault("categories", defaults.Categories)

	return &Loader{
		dataDir: dataDir,
		v:       v,
		logger:  logger,
	}
}

// DefaultConfig returns the built-in keyword and category catalog.
func DefaultConfig() *Config {
	return &Config{
		Keywords: map[string][]string{
			"role":    {"게임 기획자", "게임 프로그래머", "QA 엔지니어", "데이터 분석가"},
			"goal":    {"기능 분석", "시스템 설계", "버그 해결", "성능 최적화"},
			"context": {"신규 기능 개발", "TestCase 제작 요청", "버그 수정", "밸런스 테스트"},
			"output":  {"보고서", "TestCase", "분석 결과", "기획서", "코드"},
			"rule":    {"상세 분석 필수", "단계별 접근", "데이터 기반 결론", "실행 가능한 제안"},
		},
		Categories: []string{"기획", "프로그램", "아트", "QA", "전체"},
	}
}

// EnsureExists writes the default config file when none is present, so a
// fresh installation starts with an editable catalog on disk.
func (l *Loader) EnsureExists() error {
	path := filepath.Join(l.dataDir, "config.json")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(l.dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Load reads the config file, falling back to defaults on any failure.
func (l *Loader) Load() *Config {
	if l.config != nil {
		return l.config
	}

	if err := l.v.ReadInConfig(); err != nil {
		l.logger.Warn("failed to read config file, using defaults", "error", err)
		l.config = DefaultConfig()
		return l.config
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		l.logger.Warn("failed to parse config file, using defaults", "error", err)
		l.config = DefaultConfig()
		return l.config
	}

	if len(cfg.Keywords) == 0 {
		cfg.Keywords = DefaultConfig().Keywords
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultConfig().Categories
	}

	l.config = &cfg
	return l.config
}

// Reload drops the cached config so the next Load re-reads the file.
func (l *Loader) Reload() {
	l.config = nil
}

// Keywords returns the keyword lists keyed by section.
func (l *Loader) Keywords() map[string][]string {
	return l.Load().Keywords
}

// Categories returns the category labels.
func (l *Loader) Categories() []string {
	return l.Load().Categories
}

// LoadOutputFormats reads the output-format catalog, falling back to a
// minimal built-in catalog on any failure.
func (l *Loader) LoadOutputFormats() *OutputFormatCatalog {
	path := filepath.Join(l.dataDir, "output_formats.json")

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("failed to read output formats", "error", err)
		}
		return defaultOutputFormats()
	}

	var catalog OutputFormatCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		l.logger.Warn("failed to parse output formats, using defaults", "error", err)
		return defaultOutputFormats()
	}

	return &catalog
}

func defaultOutputFormats() *OutputFormatCatalog {
	return &OutputFormatCatalog{
		Categories: map[string]FormatCategory{
			"basic_format": {
				Name:        "기본 출력 형식",
				Description: "일반적으로 사용되는 기본적인 문서 형태",
			},
		},
		Formats: map[string]OutputFormat{
			"basic_report": {
				FormatID:    "basic_report",
				Name:        "보고서",
				Category:    "basic_format",
				Description: "기본 보고서 형식",
				Template:    "보고서 형식으로 작성해주세요.",
				Keywords:    []string{"보고서"},
			},
		},
	}
}
