package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var localeFiles = []string{
	"locales/en-us.json",
	"locales/ko-kr.json",
}

// Translator renders catalog messages for one language
type Translator struct {
	localizer *i18n.Localizer
}

// New builds a translator for lang. English is the fallback for unknown
// languages and for message IDs missing from a catalog.
func New(lang string) (*Translator, error) {
	bundle := i18n.NewBundle(language.AmericanEnglish)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, f := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return &Translator{localizer: i18n.NewLocalizer(bundle, Normalize(lang), language.AmericanEnglish.String())}, nil
}

// MustNew is New for embedded catalogs that are known to parse
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// T translates a message by its ID with optional template data and plural count
func (t *Translator) T(messageID string, templateData map[string]any, pluralCount ...int) string {
	if t == nil {
		return messageID
	}
	config := &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	}
	if len(pluralCount) > 0 {
		config.PluralCount = pluralCount[0]
	}

	msg, err := t.localizer.Localize(config)
	if err != nil {
		return messageID
	}
	return msg
}

// Normalize turns a system locale such as "ko_KR.UTF-8" into a BCP 47 tag.
// Unparseable input yields "en-US".
func Normalize(lang string) string {
	for i, r := range lang {
		if r == '.' || r == '@' {
			lang = lang[:i]
			break
		}
	}
	tag, err := language.Parse(lang)
	if lang == "" || err != nil {
		return language.AmericanEnglish.String()
	}
	return tag.String()
}
