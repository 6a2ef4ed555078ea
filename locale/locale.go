package locale

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type MessageFile struct {
	Name    string
	Content []byte
}

var (
	mu        sync.RWMutex
	bundle    = goi18n.NewBundle(language.English)
	localizer = goi18n.NewLocalizer(bundle, language.English.String())
	current   = "en"
)

// InitFromBytes registers the message files and selects English.
func InitFromBytes(files []MessageFile) error {
	b := goi18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, f := range files {
		if _, err := b.ParseMessageFileBytes(f.Content, f.Name); err != nil {
			return fmt.Errorf("parsing locale file %s: %w", f.Name, err)
		}
	}

	mu.Lock()
	bundle = b
	localizer = goi18n.NewLocalizer(b, language.English.String())
	current = "en"
	mu.Unlock()
	return nil
}

// SetWithCode switches the active language, e.g. "es" or "fr".
func SetWithCode(code string) error {
	tag, err := language.Parse(code)
	if err != nil {
		return fmt.Errorf("invalid language code %q: %w", code, err)
	}

	mu.Lock()
	defer mu.Unlock()
	localizer = goi18n.NewLocalizer(bundle, tag.String(), language.English.String())
	current = code
	return nil
}

func Current() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Localize renders msg in the active language. Messages missing from the
// bundle render from msg itself.
func Localize(msg *goi18n.Message, data map[string]any) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()

	s, err := loc.Localize(&goi18n.LocalizeConfig{
		DefaultMessage: msg,
		TemplateData:   data,
	})
	if err != nil && s == "" {
		return msg.Other
	}
	return s
}

// Get is Localize for plain strings without template data.
func Get(id, other string) string {
	return Localize(&goi18n.Message{ID: id, Other: other}, nil)
}
