package i18n

import (
	"embed"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Message IDs
const (
	MsgConventionalCommitsRequired = "conventional_commits_required"
	MsgDescriptionTooShort         = "description_too_short"
	MsgScreenshotRequired          = "screenshot_required"
	MsgReportHeader                = "report_header"
)

// DefaultLanguage is the language contributors are addressed in.
const DefaultLanguage = "fr"

//go:embed locales/active.*.toml
var locales embed.FS

// Translator renders a message by ID.
type Translator interface {
	GetMessage(messageID string, count int, templateData map[string]interface{}) string
}

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

var _ Translator = (*Translations)(nil)

// NewTranslations loads the embedded catalogues and selects lang.
func NewTranslations(lang string) (*Translations, error) {
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}

	bundle := i18n.NewBundle(language.French)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := locales.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}
	for _, file := range files {
		name := path.Join("locales", file.Name())
		data, err := locales.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("error reading locale file %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", name, err)
		}
	}

	t := &Translations{bundle: bundle}
	if err := t.SetLanguage(lang); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

// Languages lists the loaded catalogue languages.
func (t *Translations) Languages() []string {
	tags := t.bundle.LanguageTags()
	langs := make([]string, 0, len(tags))
	for _, tag := range tags {
		langs = append(langs, tag.String())
	}
	return langs
}

// GetMessage renders messageID. A count of 0 selects the "other" form;
// only a positive count goes through the language's plural rules.
func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	cfg := &i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		TemplateData: templateData,
	}
	if count > 0 {
		cfg.PluralCount = count
	}
	localized, err := t.localize.Localize(cfg)
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}
