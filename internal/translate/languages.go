package translate

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrUnknownLanguage is returned for a target code outside Languages.
var ErrUnknownLanguage = errors.New("unknown target language")

// Language is one entry of the target-language dropdown.
type Language struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Native string `json:"native"`
}

var languages = []Language{
	{Name: "English", Code: "en"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Marathi", Code: "mr"},
	{Name: "Gujarati", Code: "gu"},
	{Name: "Tamil", Code: "ta"},
	{Name: "Telugu", Code: "te"},
	{Name: "Bengali", Code: "bn"},
	{Name: "French", Code: "fr"},
	{Name: "German", Code: "de"},
	{Name: "Spanish", Code: "es"},
}

func init() {
	for i := range languages {
		languages[i].Native = display.Self.Name(language.MustParse(languages[i].Code))
	}
}

// Languages returns the selectable targets in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Lookup validates a target code.
func Lookup(code string) (Language, error) {
	for _, l := range languages {
		if l.Code == code {
			return l, nil
		}
	}
	return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}
