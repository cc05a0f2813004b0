package models

// Supported preferred languages
const (
	LanguageEnglish = "en"
	LanguageAmharic = "am"
)

// CountryCode describes a country supported at signup
type CountryCode struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	DialCode string `json:"dialCode"`
	Flag     string `json:"flag"`
}

// LanguageOption describes a supported interface language
type LanguageOption struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"nativeName"`
	Flag       string `json:"flag"`
}
