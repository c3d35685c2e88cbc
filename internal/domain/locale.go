package domain

import "strings"

// Locale is a base language code used to key localized entry content.
type Locale string

// Supported locales. The set is closed: catalog content for any other code is rejected at load.
const (
	LocaleZh Locale = "zh"
	LocaleEn Locale = "en"
	LocaleJa Locale = "ja"
	LocaleKo Locale = "ko"
	LocaleEs Locale = "es"
	LocaleFr Locale = "fr"
	LocaleDe Locale = "de"
	LocaleIt Locale = "it"
	LocaleRu Locale = "ru"
	LocalePt Locale = "pt"
	LocaleHi Locale = "hi"
	LocaleAr Locale = "ar"
	LocaleBn Locale = "bn"
)

// DefaultLocale is used when a requested locale is unknown.
const DefaultLocale = LocaleZh

var supportedLocales = map[Locale]struct{}{
	LocaleZh: {}, LocaleEn: {}, LocaleJa: {}, LocaleKo: {}, LocaleEs: {},
	LocaleFr: {}, LocaleDe: {}, LocaleIt: {}, LocaleRu: {}, LocalePt: {},
	LocaleHi: {}, LocaleAr: {}, LocaleBn: {},
}

// Valid reports whether l is one of the supported locales.
func (l Locale) Valid() bool {
	_, ok := supportedLocales[l]
	return ok
}

// ParseLocale reduces a UI locale such as "zh-Hans" or "pt_BR" to its base code.
// The second return value is false when the base code is not supported.
func ParseLocale(raw string) (Locale, bool) {
	base := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(base, "-_"); i >= 0 {
		base = base[:i]
	}
	l := Locale(base)
	return l, l.Valid()
}

// LocaleOrDefault parses raw and falls back to fallback when it is not supported.
func LocaleOrDefault(raw string, fallback Locale) Locale {
	if l, ok := ParseLocale(raw); ok {
		return l
	}
	return fallback
}
