package w4

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseMagnitudeBRL: heurística robusta para números brasileiros/anglo,
// sempre devolvendo magnitude. Sinal e parênteses da origem são descartados:
// a polaridade vem da classificação, não do texto do valor.
func parseMagnitudeBRL(val string) (float64, bool) {
	s := strings.TrimSpace(val)
	s = strings.TrimLeft(s, "+- ")
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimPrefix(strings.TrimSuffix(s, ")"), "(")
	}
	if s == "" {
		return 0, false
	}

	// localizar última ocorrência de . e , para decidir formato
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	if lastComma > lastDot {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else if lastDot > lastComma {
		if lastComma == -1 && len(s)-lastDot-1 == 3 {
			// só pontos e grupo final de 3 dígitos: separador de milhar
			// ("1.234" é 1234, não 1,234)
			s = strings.ReplaceAll(s, ".", "")
		} else if strings.Count(s, ".") > 1 {
			parts := strings.Split(s, ".")
			decimalPart := parts[len(parts)-1]
			intPart := strings.Join(parts[:len(parts)-1], "")
			s = intPart + "." + decimalPart
		}
	} else if lastComma != -1 {
		s = strings.ReplaceAll(s, ",", ".")
	}

	filtered := make([]rune, 0, len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			filtered = append(filtered, r)
		}
	}
	s = string(filtered)
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return mathRound(f, 2), true
}

func mathRound(val float64, precision int) float64 {
	pow := 1.0
	for i := 0; i < precision; i++ {
		pow *= 10
	}
	if val >= 0 {
		return float64(int64(val*pow+0.5)) / pow
	}
	return float64(int64(val*pow-0.5)) / pow
}

// formatarValorBR formata com separador de milhar '.' e decimal ','
// ("1.234,56"); valores negativos levam prefixo "-".
func formatarValorBR(val float64) string {
	neg := val < 0
	if neg {
		val = -val
	}
	s := fmt.Sprintf("%.2f", val)
	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	return b.String()
}

// converterValor converte o valor bruto em magnitude assinada formatada.
// Entrada inparseável degrada para célula vazia; a linha continua na saída.
func converterValor(raw string, isDespesa bool) (texto string, num float64, ok bool) {
	mag, ok := parseMagnitudeBRL(raw)
	if !ok {
		return "", 0, false
	}
	if isDespesa {
		mag = -mag
	}
	return formatarValorBR(mag), mag, true
}

var layoutsData = []string{
	"02/01/2006",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02T15:04:05",
}

// formatarData coage qualquer representação de data aceita para "dd/mm/aaaa",
// ou vazio quando inparseável.
func formatarData(valor string) string {
	s := strings.TrimSpace(valor)
	if s == "" {
		return ""
	}
	for _, layout := range layoutsData {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006")
		}
	}
	// serial Excel; intervalo plausível (≈1995 a ≈2028) para não confundir
	// números comuns com datas
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f > 35000 && f < 47000 {
			return excelSerialToDate(f).Format("02/01/2006")
		}
	}
	return ""
}

func excelSerialToDate(serial float64) time.Time {
	// base Excel serial -> 1899-12-30
	base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	frac := serial - float64(int64(serial))
	duration := time.Duration(int64(serial)*24) * time.Hour
	duration += time.Duration(frac * 24 * float64(time.Hour))
	return base.Add(duration)
}
