package utils

import (
	"fmt"
	"math"
	"strconv"
)

const microsPerUnit = 1_000_000

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// MicrosToCurrency converte o valor monetário em micros do provider de
// anúncios para unidades de moeda com duas casas
func MicrosToCurrency(micros int64) float64 {
	return RoundWithTwoDecimalPlace(float64(micros) / microsPerUnit)
}

// FormatPercent reescala uma fração (0–1) para pontos percentuais e formata
// com duas casas, para exibição consistente entre os painéis
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f", fraction*100)
}

// ParseInt converte strings numéricas de providers que serializam inteiros
// como texto; valores vazios ou malformados viram zero
func ParseInt(s string) int64 {
	if s == "" {
		return 0
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}

	return n
}

// ParseFloat converte strings numéricas de providers; malformadas viram zero
func ParseFloat(s string) float64 {
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}
