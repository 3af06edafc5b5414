// This file provides the embedded UI translations. Language packs are
// flat key/value JSON files; missing keys fall back to English and then
// to the key itself, so an incomplete pack degrades gracefully.

package i18n

import (
	"embed"
	"encoding/json"
	"log"
	"os"
	"strings"
)

//go:embed locales/*.json
var localesFS embed.FS

const DefaultLang = "en"

// DisplayNames maps language codes to their native names, in menu order.
var DisplayNames = map[string]string{
	"en":    "English",
	"zh_CN": "简体中文",
	"zh_TW": "繁體中文",
	"ja":    "日本語",
	"vi":    "Tiếng Việt",
}

// NormalizeLang maps a raw locale string ("zh-TW.UTF-8", "ja_JP") to a
// supported language code. Traditional-script Chinese locales (TW, HK,
// MO) map to zh_TW; any other Chinese locale maps to zh_CN. Unknown
// languages fall back to English.
func NormalizeLang(raw string) string {
	if raw == "" {
		return DefaultLang
	}
	code := strings.ReplaceAll(strings.TrimSpace(raw), "-", "_")
	code = strings.SplitN(code, ".", 2)[0]
	lower := strings.ToLower(code)
	switch {
	case strings.HasPrefix(lower, "zh_tw"), strings.HasPrefix(lower, "zh_hk"), strings.HasPrefix(lower, "zh_mo"):
		return "zh_TW"
	case strings.HasPrefix(lower, "zh"):
		return "zh_CN"
	case strings.HasPrefix(lower, "ja"):
		return "ja"
	case strings.HasPrefix(lower, "vi"):
		return "vi"
	case strings.HasPrefix(lower, "en"):
		return "en"
	}
	return DefaultLang
}

// DetectSystemLanguage reads the usual locale environment variables, in
// POSIX precedence order.
func DetectSystemLanguage() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return NormalizeLang(v)
		}
	}
	return DefaultLang
}

// Translator resolves message keys for one active language.
type Translator struct {
	lang  string
	packs map[string]map[string]string
}

// New loads the embedded language packs and activates lang. An empty
// lang selects the system language.
func New(lang string) *Translator {
	if lang == "" {
		lang = DetectSystemLanguage()
	} else {
		lang = NormalizeLang(lang)
	}

	packs := make(map[string]map[string]string, len(DisplayNames))
	for code := range DisplayNames {
		data, err := localesFS.ReadFile("locales/" + code + ".json")
		if err != nil {
			log.Printf("Missing language pack %s: %v", code, err)
			continue
		}
		var pack map[string]string
		if err := json.Unmarshal(data, &pack); err != nil {
			log.Printf("Invalid language pack %s: %v", code, err)
			continue
		}
		packs[code] = pack
	}

	return &Translator{lang: lang, packs: packs}
}

// Lang returns the active language code.
func (t *Translator) Lang() string { return t.lang }

// SetLang switches the active language.
func (t *Translator) SetLang(lang string) { t.lang = NormalizeLang(lang) }

// T resolves key in the active language and substitutes {name}
// placeholders from vars.
func (t *Translator) T(key string, vars map[string]string) string {
	msg, ok := t.packs[t.lang][key]
	if !ok {
		msg, ok = t.packs[DefaultLang][key]
	}
	if !ok {
		msg = key
	}
	for name, value := range vars {
		msg = strings.ReplaceAll(msg, "{"+name+"}", value)
	}
	return msg
}
