package weather

import (
	"fmt"
	"strings"

	"github.com/edgard/agrobot/internal/i18n"
)

// codeKeys maps Open-Meteo weather codes to description keys. Unknown
// codes fall back to "Clear sky", matching the upstream behavior users
// already rely on.
var codeKeys = map[int]string{
	0:  "Clear sky",
	1:  "Mostly sunny",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Heavy drizzle",
	61: "Light rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Light snow",
	73: "Snow",
	75: "Heavy snow",
	80: "Light showers",
	81: "Rain showers",
	82: "Heavy showers",
	95: "Thunderstorm",
}

var descriptions = map[i18n.Lang]map[string]string{
	i18n.LangEnglish: {
		"Clear sky":        "Clear sky ☀️",
		"Mostly sunny":     "Mostly sunny 🌤️",
		"Partly cloudy":    "Partly cloudy ⛅",
		"Overcast":         "Overcast ☁️",
		"Fog":              "Fog 🌫️",
		"Light drizzle":    "Light drizzle 🌦️",
		"Moderate drizzle": "Moderate drizzle 🌦️",
		"Heavy drizzle":    "Heavy drizzle 🌧️",
		"Light rain":       "Light rain 🌦️",
		"Moderate rain":    "Moderate rain 🌧️",
		"Heavy rain":       "Heavy rain ⛈️",
		"Light snow":       "Light snow 🌨️",
		"Snow":             "Snow 🌨️",
		"Heavy snow":       "Heavy snow ❄️",
		"Light showers":    "Light showers 🌦️",
		"Rain showers":     "Rain showers 🌧️",
		"Heavy showers":    "Heavy showers ⛈️",
		"Thunderstorm":     "Thunderstorm ⛈️",
	},
	i18n.LangUzbekLatin: {
		"Clear sky":        "Ochiq osmon ☀️",
		"Mostly sunny":     "Asosan quyoshli 🌤️",
		"Partly cloudy":    "Qisman bulutli ⛅",
		"Overcast":         "Bulutli ☁️",
		"Fog":              "Tuman 🌫️",
		"Light drizzle":    "Yengil yog‘ingarchilik 🌦️",
		"Moderate drizzle": "Mo‘tadil yog‘ingarchilik 🌦️",
		"Heavy drizzle":    "Kuchli yog‘ingarchilik 🌧️",
		"Light rain":       "Yengil yomg‘ir 🌦️",
		"Moderate rain":    "Mo‘tadil yomg‘ir 🌧️",
		"Heavy rain":       "Kuchli yomg‘ir ⛈️",
		"Light snow":       "Yengil qor 🌨️",
		"Snow":             "Qor 🌨️",
		"Heavy snow":       "Kuchli qor ❄️",
		"Light showers":    "Yengil yomg‘ir yog‘ishi 🌦️",
		"Rain showers":     "Yomg‘ir yog‘ishi 🌧️",
		"Heavy showers":    "Kuchli yomg‘ir yog‘ishi ⛈️",
		"Thunderstorm":     "Momaqaldiroq ⛈️",
	},
	i18n.LangUzbekCyrillic: {
		"Clear sky":        "Очиқ осмон ☀️",
		"Mostly sunny":     "Асосан қуёшли 🌤️",
		"Partly cloudy":    "Қисман булутли ⛅",
		"Overcast":         "Булутли ☁️",
		"Fog":              "Туман 🌫️",
		"Light drizzle":    "Енгил ёғингарчилик 🌦️",
		"Moderate drizzle": "Мўътадил ёғингарчилик 🌦️",
		"Heavy drizzle":    "Кучли ёғингарчилик 🌧️",
		"Light rain":       "Енгил ёмғир 🌦️",
		"Moderate rain":    "Мўътадил ёмғир 🌧️",
		"Heavy rain":       "Кучли ёмғир ⛈️",
		"Light snow":       "Енгил қор 🌨️",
		"Snow":             "Қор 🌨️",
		"Heavy snow":       "Кучли қор ❄️",
		"Light showers":    "Енгил ёмғир ёғиши 🌦️",
		"Rain showers":     "Ёмғир ёғиши 🌧️",
		"Heavy showers":    "Кучли ёмғир ёғиши ⛈️",
		"Thunderstorm":     "Момақалдироқ ⛈️",
	},
	i18n.LangRussian: {
		"Clear sky":        "Ясно ☀️",
		"Mostly sunny":     "Преимущественно солнечно 🌤️",
		"Partly cloudy":    "Переменная облачность ⛅",
		"Overcast":         "Пасмурно ☁️",
		"Fog":              "Туман 🌫️",
		"Light drizzle":    "Легкая морось 🌦️",
		"Moderate drizzle": "Морось 🌦️",
		"Heavy drizzle":    "Сильная морось 🌧️",
		"Light rain":       "Небольшой дождь 🌦️",
		"Moderate rain":    "Дождь 🌧️",
		"Heavy rain":       "Сильный дождь ⛈️",
		"Light snow":       "Небольшой снег 🌨️",
		"Snow":             "Снег 🌨️",
		"Heavy snow":       "Сильный снег ❄️",
		"Light showers":    "Небольшие ливни 🌦️",
		"Rain showers":     "Ливни 🌧️",
		"Heavy showers":    "Сильные ливни ⛈️",
		"Thunderstorm":     "Гроза ⛈️",
	},
}

// Describe returns the localized description for a weather code, with
// English as the language fallback.
func Describe(code int, lang i18n.Lang) string {
	key, ok := codeKeys[code]
	if !ok {
		key = "Clear sky"
	}
	if d, ok := descriptions[lang]; ok {
		if s, ok := d[key]; ok {
			return s
		}
	}
	return descriptions[i18n.LangEnglish][key]
}

// Render formats a forecast as HTML-formatted message text in the user's
// language. Days with zero precipitation omit the precipitation line.
func Render(f *Forecast, days int, lang i18n.Lang) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>"+i18n.T(lang, "weather_title")+"</b>\n\n", days)

	for _, day := range f.Days {
		fmt.Fprintf(&b, "📅 <b>%s</b>\n", day.Date.Format("02/01"))
		b.WriteString(Describe(day.Code, lang))
		b.WriteByte('\n')
		fmt.Fprintf(&b, "🌡 +%.1f° / %.1f°\n", day.TempMax, day.TempMin)
		fmt.Fprintf(&b, "💨 %.1f km/h\n", day.WindMax)
		if day.Precipitation > 0 {
			fmt.Fprintf(&b, "🌧 %.1f mm\n", day.Precipitation)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
