package aggregating

import "github.com/pkg/errors"

var (
	// ErrInvalidDateRange indica intervalo com início depois do fim
	ErrInvalidDateRange = errors.New("intervalo de datas inválido: início depois do fim")
	// ErrUnknownProvider indica um provider sem adapter registrado
	ErrUnknownProvider = errors.New("provider desconhecido")
)
