package i18n

import (
	"golang.org/x/text/language"

	"github.com/kovertlabs/deepcover/internal/domain"
)

// DefaultLocale is the fallback language for config strings.
const DefaultLocale = "en"

// Pick returns the best translation of a localized config string for the
// player's locale hint. Matching uses BCP 47 semantics ("pt-BR" falls back to
// "pt"), then the default locale, then any available translation.
func Pick(ls domain.LocalizedString, locale string) string {
	if len(ls) == 0 {
		return ""
	}

	if locale != "" {
		tags := make([]language.Tag, 0, len(ls))
		keys := make([]string, 0, len(ls))
		for k := range ls {
			tag, err := language.Parse(k)
			if err != nil {
				continue
			}
			tags = append(tags, tag)
			keys = append(keys, k)
		}
		if len(tags) > 0 {
			matcher := language.NewMatcher(tags)
			if desired, err := language.Parse(locale); err == nil {
				_, idx, conf := matcher.Match(desired)
				if conf > language.No {
					return ls[keys[idx]]
				}
			}
		}
	}

	if v, ok := ls[DefaultLocale]; ok {
		return v
	}
	for _, v := range ls {
		return v
	}
	return ""
}
