package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMicrosToCurrency(t *testing.T) {
	assert.Equal(t, 1.50, MicrosToCurrency(1_500_000))
	assert.Equal(t, 0.0, MicrosToCurrency(0))
	assert.Equal(t, 0.01, MicrosToCurrency(10_000))
	assert.Equal(t, 1234.57, MicrosToCurrency(1_234_567_890))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "3.42", FormatPercent(0.0342))
	assert.Equal(t, "0.00", FormatPercent(0))
	assert.Equal(t, "100.00", FormatPercent(1))
	assert.Equal(t, "47.50", FormatPercent(0.475))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, int64(120), ParseInt("120"))
	assert.Equal(t, int64(0), ParseInt(""))
	assert.Equal(t, int64(0), ParseInt("abc"))
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 0.0342, ParseFloat("0.0342"))
	assert.Equal(t, 0.0, ParseFloat(""))
	assert.Equal(t, 0.0, ParseFloat("abc"))
}
