// Package homework validates Practicum API responses and turns homework
// records into chat messages.
package homework

import "sort"

var verdicts = map[string]string{
	"approved":  "Работа проверена: ревьюеру всё понравилось. Ура!",
	"reviewing": "Работа взята на проверку ревьюером.",
	"rejected":  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the display text for a review status code.
func Verdict(code string) (string, bool) {
	v, ok := verdicts[code]
	return v, ok
}

// StatusCodes returns all known status codes in sorted order.
func StatusCodes() []string {
	codes := make([]string, 0, len(verdicts))
	for c := range verdicts {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
