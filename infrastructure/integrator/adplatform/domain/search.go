package domain

// Tipos do protocolo de consulta do provider de anúncios (searchStream).
// O provider serializa inteiros de 64 bits como strings

type Campaign struct {
	ID     int64  `json:"id,string"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type Metrics struct {
	Impressions      int64   `json:"impressions,string"`
	Clicks           int64   `json:"clicks,string"`
	Ctr              float64 `json:"ctr"`
	CostMicros       int64   `json:"costMicros,string"`
	Conversions      float64 `json:"conversions"`
	ConversionsValue float64 `json:"conversionsValue"`
	AverageCpc       float64 `json:"averageCpc"`
}

type Result struct {
	Campaign *Campaign `json:"campaign,omitempty"`
	Metrics  *Metrics  `json:"metrics,omitempty"`
}

type SearchChunk struct {
	Results []Result `json:"results"`
}
