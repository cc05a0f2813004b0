package usecase

import "github.com/tilanet/auth-service/internal/pkg/models"

var supportedCountries = []models.CountryCode{
	{Code: "ET", Name: "Ethiopia", DialCode: "+251", Flag: "🇪🇹"},
	{Code: "US", Name: "United States", DialCode: "+1", Flag: "🇺🇸"},
	{Code: "CA", Name: "Canada", DialCode: "+1", Flag: "🇨🇦"},
	{Code: "GB", Name: "United Kingdom", DialCode: "+44", Flag: "🇬🇧"},
	{Code: "DE", Name: "Germany", DialCode: "+49", Flag: "🇩🇪"},
	{Code: "FR", Name: "France", DialCode: "+33", Flag: "🇫🇷"},
	{Code: "AU", Name: "Australia", DialCode: "+61", Flag: "🇦🇺"},
	{Code: "SE", Name: "Sweden", DialCode: "+46", Flag: "🇸🇪"},
	{Code: "NO", Name: "Norway", DialCode: "+47", Flag: "🇳🇴"},
	{Code: "DK", Name: "Denmark", DialCode: "+45", Flag: "🇩🇰"},
}

var supportedLanguages = []models.LanguageOption{
	{Code: models.LanguageEnglish, Name: "English", NativeName: "English", Flag: "🇬🇧"},
	{Code: models.LanguageAmharic, Name: "Amharic", NativeName: "አማርኛ", Flag: "🇪🇹"},
}

// SupportedCountries returns the countries accepted at signup
func (u *AuthUC) SupportedCountries() []models.CountryCode {
	out := make([]models.CountryCode, len(supportedCountries))
	copy(out, supportedCountries)
	return out
}

// SupportedLanguages returns the selectable interface languages
func (u *AuthUC) SupportedLanguages() []models.LanguageOption {
	out := make([]models.LanguageOption, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

func lookupCountry(code string) (models.CountryCode, bool) {
	for _, c := range supportedCountries {
		if c.Code == code {
			return c, true
		}
	}
	return models.CountryCode{}, false
}

func isSupportedLanguage(code string) bool {
	for _, l := range supportedLanguages {
		if l.Code == code {
			return true
		}
	}
	return false
}
