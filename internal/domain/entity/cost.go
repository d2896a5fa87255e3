package entity

import (
	"strconv"
	"time"
)

// Tags de alocação de custo usadas no relatório.
const (
	CostTagProjectName = "project-name"
	CostTagEnvType     = "env-type"
	// NoTag substitui valores de tag vazios (recursos sem a tag).
	NoTag = "NoTag"

	DefaultCostMonths = 6
)

// CostPeriod is the reporting window. Start is inclusive and End exclusive, as Cost
// Explorer expects; LastDay is the last day covered, used in labels.
type CostPeriod struct {
	Start   time.Time
	End     time.Time
	LastDay time.Time
}

// NewCostPeriod covers the N whole months before the month of now.
func NewCostPeriod(now time.Time, months int) CostPeriod {
	if months <= 0 {
		months = DefaultCostMonths
	}
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return CostPeriod{
		Start:   firstOfMonth.AddDate(0, -months, 0),
		End:     firstOfMonth,
		LastDay: firstOfMonth.AddDate(0, 0, -1),
	}
}

// StartString formata o início como YYYY-MM-DD.
func (p CostPeriod) StartString() string { return p.Start.Format("2006-01-02") }

// EndString formata o fim (exclusivo) como YYYY-MM-DD.
func (p CostPeriod) EndString() string { return p.End.Format("2006-01-02") }

// SanitizeTag troca valores vazios por NoTag.
func SanitizeTag(v string) string {
	if v == "" {
		return NoTag
	}
	return v
}

// CostAccount é uma conta ativa da organização.
type CostAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Label is '<Name> (<Id>)', the account directory name.
func (a CostAccount) Label() string {
	return a.Name + " (" + a.ID + ")"
}

// ServiceCost represents a cost amount for a specific AWS service.
type ServiceCost struct {
	ServiceName string `json:"service_name"`
	Amount      string `json:"amount"`
	Unit        string `json:"unit"`
}

// Value converte o valor textual retornado pelo Cost Explorer.
func (s ServiceCost) Value() float64 {
	v, err := strconv.ParseFloat(s.Amount, 64)
	if err != nil {
		return 0
	}
	return v
}

// CostLine agrupa os custos por serviço de uma conta/projeto/env em um mês.
type CostLine struct {
	Account     CostAccount   `json:"account"`
	ProjectName string        `json:"project_name"`
	EnvType     string        `json:"env_type"`
	Start       string        `json:"start"`
	End         string        `json:"end"`
	Services    []ServiceCost `json:"services"`
}

// PositiveServices returns the services with an amount greater than zero, in order.
func (l CostLine) PositiveServices() []ServiceCost {
	var out []ServiceCost
	for _, s := range l.Services {
		if s.Value() > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Total soma os custos positivos da linha.
func (l CostLine) Total() float64 {
	var total float64
	for _, s := range l.PositiveServices() {
		total += s.Value()
	}
	return total
}

// CostSummary is the project x env matrix of one account and month.
type CostSummary struct {
	Account  CostAccount                   `json:"account"`
	Start    string                        `json:"start"`
	End      string                        `json:"end"`
	Projects []string                      `json:"projects"`
	EnvTypes []string                      `json:"env_types"`
	Amounts  map[string]map[string]float64 `json:"amounts"`
}

// NewCostSummary creates an empty matrix for the given (already sanitised) tag values.
func NewCostSummary(account CostAccount, start, end string, projects, envTypes []string) *CostSummary {
	s := &CostSummary{
		Account:  account,
		Start:    start,
		End:      end,
		Projects: projects,
		EnvTypes: envTypes,
		Amounts:  make(map[string]map[string]float64, len(projects)),
	}
	for _, p := range projects {
		s.Amounts[p] = make(map[string]float64, len(envTypes))
	}
	return s
}

// Add acumula o total de uma linha na matriz.
func (s *CostSummary) Add(project, env string, amount float64) {
	if _, ok := s.Amounts[project]; !ok {
		s.Amounts[project] = make(map[string]float64)
		s.Projects = append(s.Projects, project)
	}
	s.Amounts[project][env] += amount
}

// Rows devolve as linhas do CSV de resumo, uma por projeto.
func (s *CostSummary) Rows() [][]string {
	rows := make([][]string, 0, len(s.Projects))
	for _, p := range s.Projects {
		row := []string{p}
		for _, e := range s.EnvTypes {
			row = append(row, strconv.FormatFloat(s.Amounts[p][e], 'f', -1, 64))
		}
		rows = append(rows, row)
	}
	return rows
}

// Header is the summary CSV header.
func (s *CostSummary) Header() []string {
	return append([]string{"Project Name/Env Type"}, s.EnvTypes...)
}

// Total soma todos os valores da matriz.
func (s *CostSummary) Total() float64 {
	var total float64
	for _, envs := range s.Amounts {
		for _, v := range envs {
			total += v
		}
	}
	return total
}
