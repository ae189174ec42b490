package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/douhashi/triage/internal/description"
	"github.com/douhashi/triage/internal/i18n"
	"github.com/douhashi/triage/internal/labeler"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPaths は --config 未指定時に探す設定ファイル
var DefaultConfigPaths = []string{
	".github/triage.yml",
	".github/triage.yaml",
}

// Config はアプリケーション全体の設定
type Config struct {
	GitHub      GitHubConfig      `mapstructure:"github" yaml:"github"`
	Labels      LabelConfig       `mapstructure:"labels" yaml:"labels"`
	Rules       RulesConfig       `mapstructure:"rules" yaml:"rules"`
	Description DescriptionConfig `mapstructure:"description" yaml:"description"`
	Locale      string            `mapstructure:"locale" yaml:"locale" validate:"required"`
}

// GitHubConfig はGitHub関連の設定
type GitHubConfig struct {
	Token   string `mapstructure:"token" yaml:"token,omitempty"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`
}

// LabelConfig はbotが管理するステータスラベル
type LabelConfig struct {
	Triage      string `mapstructure:"triage" yaml:"triage" validate:"required"`
	Invalid     string `mapstructure:"invalid" yaml:"invalid" validate:"required"`
	NeedsReview string `mapstructure:"needs_review" yaml:"needs_review" validate:"required"`
}

// RulesConfig はラベル付けのルール。指定したテーブルはデフォルトを置き換える
type RulesConfig struct {
	CommitTypes   map[string]string `mapstructure:"commit_types" yaml:"commit_types" validate:"dive,keys,required,endkeys,required"`
	Areas         []PatternConfig   `mapstructure:"areas" yaml:"areas" validate:"dive"`
	IssueKeywords []PatternConfig   `mapstructure:"issue_keywords" yaml:"issue_keywords" validate:"dive"`
}

// PatternConfig はパターンとラベルの組
type PatternConfig struct {
	Label    string   `mapstructure:"label" yaml:"label" validate:"required"`
	Patterns []string `mapstructure:"patterns" yaml:"patterns" validate:"min=1,dive,required"`
}

// DescriptionConfig は本文チェックの設定
type DescriptionConfig struct {
	MinLength        int    `mapstructure:"min_length" yaml:"min_length" validate:"gte=0"`
	AttachmentMarker string `mapstructure:"attachment_marker" yaml:"attachment_marker" validate:"required"`
}

// NewConfig はデフォルト値の Config を作成する
func NewConfig() *Config {
	rules := labeler.DefaultRules()
	cfg := &Config{
		Labels: LabelConfig{
			Triage:      rules.Status.Triage,
			Invalid:     rules.Status.Invalid,
			NeedsReview: rules.Status.NeedsReview,
		},
		Description: DescriptionConfig{
			MinLength:        description.DefaultMinLength,
			AttachmentMarker: description.DefaultAttachmentMarker,
		},
		Locale: i18n.DefaultLanguage,
	}
	cfg.fillRules()
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// 環境変数の設定
	v.SetEnvPrefix("TRIAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// GITHUB_TOKEN / GITHUB_API_URL もサポート
	_ = v.BindEnv("github.token", "TRIAGE_GITHUB_TOKEN", "GITHUB_TOKEN")
	_ = v.BindEnv("github.base_url", "TRIAGE_GITHUB_BASE_URL", "GITHUB_API_URL")

	// デフォルト値の設定
	d := NewConfig()
	v.SetDefault("labels.triage", d.Labels.Triage)
	v.SetDefault("labels.invalid", d.Labels.Invalid)
	v.SetDefault("labels.needs_review", d.Labels.NeedsReview)
	v.SetDefault("description.min_length", d.Description.MinLength)
	v.SetDefault("description.attachment_marker", d.Description.AttachmentMarker)
	v.SetDefault("locale", d.Locale)

	return v
}

// Load は設定ファイルから設定を読み込む。configPath が空の場合は環境変数と
// デフォルト値のみを使う
func (c *Config) Load(configPath string) error {
	v := newViper()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	// ルールテーブルはマージせず置き換える
	c.Rules = RulesConfig{}

	// 設定を構造体にマッピング
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	c.fillRules()

	return nil
}

// LoadOrDefault は設定ファイルを読み込み、実際に読み込んだパスを返す。
// configPath が空の場合は DefaultConfigPaths を順に探す。
// ファイルが見つからない場合は環境変数とデフォルト値だけを反映し、空文字列を返す
func (c *Config) LoadOrDefault(configPath string) (string, error) {
	candidates := DefaultConfigPaths
	if configPath != "" {
		candidates = []string{configPath}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := c.Load(path); err != nil {
			return "", err
		}
		return path, nil
	}

	// 明示的に指定されたファイルがない場合はエラー
	if configPath != "" {
		return "", fmt.Errorf("config file not found: %s", configPath)
	}
	return "", c.Load("")
}

// fillRules は未指定のルールテーブルをデフォルトで埋める
func (c *Config) fillRules() {
	rules := labeler.DefaultRules()
	if len(c.Rules.CommitTypes) == 0 {
		c.Rules.CommitTypes = rules.CommitTypes
	}
	if len(c.Rules.Areas) == 0 {
		c.Rules.Areas = toPatternConfigs(rules.Areas)
	}
	if len(c.Rules.IssueKeywords) == 0 {
		c.Rules.IssueKeywords = toPatternConfigs(rules.IssueKeywords)
	}
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return errors.New("GitHub token is required")
	}
	return c.ValidateRules()
}

// ValidateRules はトークン以外の設定を検証する
func (c *Config) ValidateRules() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
}

var validate = newValidator()

// newValidator はエラーメッセージに YAML のキー名を使うバリデーターを作成する
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describe は "rules.areas[0].patterns" のような設定キーでエラーを説明する
func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}

// LabelRules は設定からラベル付けルールを組み立てる
func (c *Config) LabelRules() labeler.Rules {
	commitTypes := make(map[string]string, len(c.Rules.CommitTypes))
	for k, v := range c.Rules.CommitTypes {
		commitTypes[strings.ToLower(k)] = v
	}
	return labeler.Rules{
		Status: labeler.StatusLabels{
			Triage:      c.Labels.Triage,
			Invalid:     c.Labels.Invalid,
			NeedsReview: c.Labels.NeedsReview,
		},
		CommitTypes:   commitTypes,
		Areas:         toPatternRules(c.Rules.Areas),
		IssueKeywords: toPatternRules(c.Rules.IssueKeywords),
	}
}

// WriteYAML は有効な設定を YAML で書き出す。トークンは出力しない
func (c *Config) WriteYAML(w io.Writer) error {
	redacted := *c
	if redacted.GitHub.Token != "" {
		redacted.GitHub.Token = "***MASKED***"
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&redacted); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func toPatternConfigs(rules []labeler.PatternRule) []PatternConfig {
	out := make([]PatternConfig, 0, len(rules))
	for _, r := range rules {
		out = append(out, PatternConfig{Label: r.Label, Patterns: append([]string(nil), r.Patterns...)})
	}
	return out
}

func toPatternRules(configs []PatternConfig) []labeler.PatternRule {
	out := make([]labeler.PatternRule, 0, len(configs))
	for _, c := range configs {
		out = append(out, labeler.PatternRule{Label: c.Label, Patterns: append([]string(nil), c.Patterns...)})
	}
	return out
}
