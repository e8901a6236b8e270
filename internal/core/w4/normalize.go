package w4

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ---------------------- utilitários comuns ----------------------

var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9 ]+`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

// normalizeText canoniza texto livre para comparação: minúsculas, sem
// acentos (decompõe e descarta marcas combinantes), runs de caracteres não
// alfanuméricos viram um espaço, espaços colapsados. Determinística e total;
// idempotente por construção.
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, str)
	result = strings.ToLower(result)
	result = nonAlphanumericRegex.ReplaceAllString(result, " ")
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
