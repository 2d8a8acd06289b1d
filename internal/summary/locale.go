package summary

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// timeLayouts maps supported locales to the way they print a date and time.
// The first entry is the fallback.
var timeLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006, 3:04:05 PM"},
	{language.BritishEnglish, "02/01/2006, 15:04:05"},
	{language.German, "2.1.2006, 15:04:05"},
	{language.Swedish, "2006-01-02 15:04:05"},
	{language.French, "02/01/2006 15:04:05"},
	{language.Japanese, "2006/1/2 15:04:05"},
}

var layoutMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(timeLayouts))
	for i, l := range timeLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// Locale controls how timestamps are shown.
type Locale struct {
	Tag      language.Tag
	Layout   string
	Location *time.Location
}

// NewLocale picks the closest supported layout for tag. A nil location means local time.
func NewLocale(tag language.Tag, loc *time.Location) Locale {
	if loc == nil {
		loc = time.Local
	}
	idx := 0
	if tag != language.Und {
		if _, i, conf := layoutMatcher.Match(tag); conf != language.No {
			idx = i
		}
	}
	return Locale{Tag: tag, Layout: timeLayouts[idx].layout, Location: loc}
}

// FormatTime renders t in the locale's layout and location.
func (l Locale) FormatTime(t time.Time) string {
	loc := l.Location
	if loc == nil {
		loc = time.Local
	}
	layout := l.Layout
	if layout == "" {
		layout = timeLayouts[0].layout
	}
	return t.In(loc).Format(layout)
}

// ParseLocale accepts POSIX ("sv_SE.UTF-8", "de_DE@euro") and BCP 47 ("sv-SE") forms.
func ParseLocale(s string) (language.Tag, error) {
	base := s
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}
	if base == "" || base == "C" || base == "POSIX" {
		return language.Und, fmt.Errorf("no language in locale %q", s)
	}
	tag, err := language.Parse(strings.ReplaceAll(base, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("parsing locale %q: %w", s, err)
	}
	return tag, nil
}

// DetectLocale returns the system locale, or language.Und when none is set.
func DetectLocale() language.Tag {
	locale := detectSystemLocale()
	if locale == "" {
		return language.Und
	}
	tag, err := ParseLocale(locale)
	if err != nil {
		return language.Und
	}
	return tag
}
