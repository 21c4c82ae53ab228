package messages

// Currencies offered by the book-creation flow, in display order.
var Currencies = []string{"CAD", "EUR", "PLN", "RUB", "SGD", "USD"}

var currencyNames = map[string]string{
	"CAD": "Canadian Dollar",
	"EUR": "Euro",
	"PLN": "Polish Zloty",
	"RUB": "Russian Ruble",
	"SGD": "Singaporean Dollar",
	"USD": "US Dollar",
}

func CurrencyName(code string) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}
	return code
}

func ValidCurrency(code string) bool {
	_, ok := currencyNames[code]
	return ok
}

type Language struct {
	Code string
	Name string
}

// Languages the catalog carries full variants for.
var Languages = []Language{
	{Code: "en", Name: "English"},
	{Code: "ru", Name: "Русский"},
}

func LanguageName(code string) string {
	for _, l := range Languages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}

func ValidLanguage(code string) bool {
	for _, l := range Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

var monthLabels = map[int]map[string]string{
	1:  {"default": "January", "ru": "Январь"},
	2:  {"default": "February", "ru": "Февраль"},
	3:  {"default": "March", "ru": "Март"},
	4:  {"default": "April", "ru": "Апрель"},
	5:  {"default": "May", "ru": "Май"},
	6:  {"default": "June", "ru": "Июнь"},
	7:  {"default": "July", "ru": "Июль"},
	8:  {"default": "August", "ru": "Август"},
	9:  {"default": "September", "ru": "Сентябрь"},
	10: {"default": "October", "ru": "Октябрь"},
	11: {"default": "November", "ru": "Ноябрь"},
	12: {"default": "December", "ru": "Декабрь"},
}

func MonthLabel(month int, lang string) string {
	variants, ok := monthLabels[month]
	if !ok {
		return ""
	}
	if label, ok := variants[lang]; ok {
		return label
	}
	return variants["default"]
}
