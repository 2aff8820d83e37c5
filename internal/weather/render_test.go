package weather

import (
	"strings"
	"testing"
	"time"

	"github.com/edgard/agrobot/internal/i18n"
)

func testForecast() *Forecast {
	return &Forecast{
		Days: []Day{
			{
				Date:          time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				Code:          0,
				TempMax:       31.5,
				TempMin:       18.2,
				WindMax:       12.0,
				Precipitation: 0,
			},
			{
				Date:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
				Code:          63,
				TempMax:       24.0,
				TempMin:       15.5,
				WindMax:       20.3,
				Precipitation: 4.2,
			},
		},
	}
}

func TestRenderOmitsZeroPrecipitation(t *testing.T) {
	out := Render(testForecast(), 2, i18n.LangEnglish)

	if !strings.Contains(out, "2-day forecast:") {
		t.Errorf("output missing localized title: %q", out)
	}
	if !strings.Contains(out, "01/06") || !strings.Contains(out, "02/06") {
		t.Errorf("output missing formatted dates: %q", out)
	}
	if !strings.Contains(out, "🌧 4.2 mm") {
		t.Errorf("rainy day missing precipitation line: %q", out)
	}
	// The dry day must not carry a precipitation line at all. Counting
	// " mm\n" instead of the emoji keeps rain icons inside weather-code
	// descriptions out of the tally.
	if got := strings.Count(out, " mm\n"); got != 1 {
		t.Errorf("expected exactly one precipitation line, got %d in %q", got, out)
	}
}

func TestRenderLocalizedDescriptions(t *testing.T) {
	tests := []struct {
		lang i18n.Lang
		want string
	}{
		{i18n.LangEnglish, "Clear sky ☀️"},
		{i18n.LangUzbekLatin, "Ochiq osmon ☀️"},
		{i18n.LangUzbekCyrillic, "Очиқ осмон ☀️"},
		{i18n.LangRussian, "Ясно ☀️"},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			out := Render(testForecast(), 2, tt.lang)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output for %s missing %q", tt.lang, tt.want)
			}
		})
	}
}

func TestDescribeUnknownCodeFallsBack(t *testing.T) {
	if got := Describe(42, i18n.LangEnglish); got != "Clear sky ☀️" {
		t.Errorf("Describe(42) = %q, want clear-sky fallback", got)
	}
	// Unknown language falls back to English.
	if got := Describe(95, i18n.Lang("xx")); got != "Thunderstorm ⛈️" {
		t.Errorf("Describe(95, xx) = %q, want English fallback", got)
	}
}

func TestForecastFromAPIValidation(t *testing.T) {
	var payload apiResponse
	if _, err := forecastFromAPI(payload); err == nil {
		t.Error("empty daily data should be rejected")
	}

	payload.Daily.Time = []string{"2025-06-01", "2025-06-02"}
	payload.Daily.Weathercode = []int{0}
	if _, err := forecastFromAPI(payload); err == nil {
		t.Error("mismatched array lengths should be rejected")
	}
}
