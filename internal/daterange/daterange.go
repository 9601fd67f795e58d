// Package daterange normaliza tokens relativos de data ("today", "yesterday",
// "{N}daysAgo") para datas literais no formato exigido por cada provider.
// É puro: o instante de referência é sempre injetado pelo chamador
package daterange

import (
	"strconv"
	"strings"
	"time"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
)

const (
	// Layout hifenizado (web analytics e anúncios)
	LayoutHyphenated = "2006-01-02"
	// Layout compacto (social media)
	LayoutCompact = "20060102"

	tokenToday     = "today"
	tokenYesterday = "yesterday"
	suffixDaysAgo  = "daysago"
)

// Normalize converte um token relativo em uma data literal YYYY-MM-DD com
// base no instante de referência. Tokens desconhecidos ou com prefixo
// numérico malformado voltam inalterados: o provider rejeitará a data
// inválida e a falha aparece como erro de consulta, não como crash aqui
func Normalize(token string, ref time.Time) string {
	lower := strings.ToLower(strings.TrimSpace(token))

	switch {
	case lower == tokenToday:
		return ref.Format(LayoutHyphenated)
	case lower == tokenYesterday:
		return ref.AddDate(0, 0, -1).Format(LayoutHyphenated)
	case strings.HasSuffix(lower, suffixDaysAgo):
		prefix := strings.TrimSuffix(lower, suffixDaysAgo)
		n, err := strconv.Atoi(prefix)
		if err != nil || n < 0 {
			return token
		}
		return ref.AddDate(0, 0, -n).Format(LayoutHyphenated)
	}

	return token
}

// NormalizeRange normaliza os dois limites de um intervalo
func NormalizeRange(rng domain.DateRange, ref time.Time) domain.ResolvedRange {
	return domain.ResolvedRange{
		Start: Normalize(rng.Start, ref),
		End:   Normalize(rng.End, ref),
	}
}

// Validate verifica a invariante start <= end. Limites que não são datas
// literais válidas não são validados aqui: o provider é quem rejeita
func Validate(rng domain.ResolvedRange) bool {
	start, errStart := time.Parse(LayoutHyphenated, rng.Start)
	end, errEnd := time.Parse(LayoutHyphenated, rng.End)
	if errStart != nil || errEnd != nil {
		return true
	}
	return !start.After(end)
}

// Compact reformata uma data hifenizada para o layout compacto YYYYMMDD.
// Datas que não parseiam voltam inalteradas
func Compact(date string) string {
	parsed, err := time.Parse(LayoutHyphenated, date)
	if err != nil {
		return date
	}
	return parsed.Format(LayoutCompact)
}

// CompactRange reformata um intervalo inteiro para o layout compacto
func CompactRange(rng domain.ResolvedRange) domain.ResolvedRange {
	return domain.ResolvedRange{
		Start: Compact(rng.Start),
		End:   Compact(rng.End),
	}
}
