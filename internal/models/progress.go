package models

// Progress is a user's series of labelled data points. Labels and DataPoints
// are parallel and always have the same length.
type Progress struct {
	UserID     string    `json:"user_id"`
	Labels     []string  `json:"labels"`
	DataPoints []float64 `json:"dataPoints"`
}

// Presentation defaults for the single progress dataset.
const (
	ProgressDatasetLabel = "Vocabulary Growth"
	ProgressBorderColor  = "#03a9f4"
	ProgressBackground   = "rgba(3, 169, 244, 0.2)"
	ProgressLineTension  = 0.3
)

// ChartDataset is one line of a chart.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Tension         float64   `json:"tension"`
}

// Chart is shaped for direct consumption by a Chart.js line chart.
type Chart struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// Chart renders the progress as a chart. A nil or empty progress yields a
// chart with no labels and no datasets.
func (p *Progress) Chart() Chart {
	if p == nil || len(p.Labels) == 0 {
		return Chart{Labels: []string{}, Datasets: []ChartDataset{}}
	}
	return Chart{
		Labels: p.Labels,
		Datasets: []ChartDataset{{
			Label:           ProgressDatasetLabel,
			Data:            p.DataPoints,
			BorderColor:     ProgressBorderColor,
			BackgroundColor: ProgressBackground,
			Tension:         ProgressLineTension,
		}},
	}
}
