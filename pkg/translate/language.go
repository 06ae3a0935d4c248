package translate

import "strings"

// Language is a display language offered to students
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

const CodeEnglish = "en"

// Supported lists the languages in menu order
var Supported = []Language{
	{Name: "English", Code: CodeEnglish},
	{Name: "Telugu", Code: "te"},
	{Name: "Kannada", Code: "kn"},
	{Name: "Hindi", Code: "hi"},
}

// LookupLanguage accepts either the display name or the code, case-insensitively
func LookupLanguage(nameOrCode string) (Language, bool) {
	key := strings.TrimSpace(nameOrCode)
	for _, l := range Supported {
		if strings.EqualFold(l.Name, key) || strings.EqualFold(l.Code, key) {
			return l, true
		}
	}
	return Language{}, false
}
