package domain

// Tipos do protocolo de relatórios do provider de web analytics
// (Data API: POST properties/{id}:runReport)

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Dimension struct {
	Name string `json:"name"`
}

type Metric struct {
	Name string `json:"name"`
}

type MetricOrderBy struct {
	MetricName string `json:"metricName"`
}

type OrderBy struct {
	Desc   bool           `json:"desc,omitempty"`
	Metric *MetricOrderBy `json:"metric,omitempty"`
}

type ReportRequest struct {
	DateRanges []DateRange `json:"dateRanges"`
	Dimensions []Dimension `json:"dimensions,omitempty"`
	Metrics    []Metric    `json:"metrics"`
	OrderBys   []OrderBy   `json:"orderBys,omitempty"`
	Limit      int64       `json:"limit,omitempty"`
}

type DimensionValue struct {
	Value string `json:"value"`
}

type MetricValue struct {
	Value string `json:"value"`
}

type Row struct {
	DimensionValues []DimensionValue `json:"dimensionValues"`
	MetricValues    []MetricValue    `json:"metricValues"`
}

type ReportResponse struct {
	Rows     []Row `json:"rows"`
	RowCount int   `json:"rowCount"`
}

// MetricValueAt retorna o valor da métrica na posição dada da primeira linha,
// vazio quando o relatório não tem linhas
func (r *ReportResponse) MetricValueAt(index int) string {
	if r == nil || len(r.Rows) == 0 {
		return ""
	}
	row := r.Rows[0]
	if index < 0 || index >= len(row.MetricValues) {
		return ""
	}
	return row.MetricValues[index].Value
}
