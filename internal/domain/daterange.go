package domain

// DateRange é o intervalo como chega da camada de apresentação: cada limite
// pode ser uma data literal (YYYY-MM-DD) ou um token relativo
// ("today", "yesterday", "{N}daysAgo")
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ResolvedRange é o intervalo já normalizado para datas literais.
// Os adapters formatam cada limite conforme o protocolo do provider
// (hifenizado ou compacto)
type ResolvedRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
