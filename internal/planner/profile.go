package planner

import (
	"fmt"
	"strings"

	"github.com/pbaille/planner/internal/domain"
)

// ProfilePatch carries profile fields to overwrite; nil fields are kept
type ProfilePatch struct {
	Name   *string
	School *string
	Year   *int
}

func SetProfile(doc domain.Document, pp ProfilePatch) domain.Document {
	if pp.Name != nil {
		doc.Profile.Name = strings.TrimSpace(*pp.Name)
	}
	if pp.School != nil {
		doc.Profile.School = strings.TrimSpace(*pp.School)
	}
	if pp.Year != nil {
		doc.Profile.Year = domain.Count(*pp.Year).NonNegative()
	}
	return doc
}

// ParseTheme accepts "light" or "dark" in any case
func ParseTheme(s string) (domain.Theme, error) {
	switch domain.Theme(strings.ToLower(strings.TrimSpace(s))) {
	case domain.ThemeLight:
		return domain.ThemeLight, nil
	case domain.ThemeDark:
		return domain.ThemeDark, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}

func SetTheme(doc domain.Document, theme domain.Theme) domain.Document {
	doc.Theme = theme
	return doc
}

// ToggleTheme switches between light and dark; an unset theme counts as light
func ToggleTheme(doc domain.Document) domain.Document {
	if doc.Theme == domain.ThemeDark {
		doc.Theme = domain.ThemeLight
	} else {
		doc.Theme = domain.ThemeDark
	}
	return doc
}
