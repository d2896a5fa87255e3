package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/entity"
	"github.com/diillson/aws-ops-scripts-go/internal/domain/repository"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/paginate"
	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

const (
	CostExplorerScript = "aws-cost-explorer"

	costMetric     = "UnblendedCost"
	costResultsDir = "results"
)

// CostExplorerOptions são as entradas do relatório de custos.
type CostExplorerOptions struct {
	Months    int
	PDF       bool
	OutputDir string
}

// CostExplorerUseCase gera a árvore de CSVs de custo por conta, período, projeto e ambiente.
type CostExplorerUseCase struct {
	scriptBase
	now func() time.Time
}

// NewCostExplorerUseCase creates a new cost explorer use case.
func NewCostExplorerUseCase(
	clients repository.AWSClientFactory,
	exportRepo repository.ExportRepository,
	console types.ConsoleInterface,
	config *types.Config,
) *CostExplorerUseCase {
	return &CostExplorerUseCase{
		scriptBase: newScriptBase(clients, exportRepo, console, config),
		now:        time.Now,
	}
}

// costResponses guarda as respostas por conta -> projeto -> env, na forma gravada no JSON.
type costResponses map[string]map[string]map[string][]cetypes.ResultByTime

// Run collects the cost of every active account for each project/env tag pair.
func (uc *CostExplorerUseCase) Run(ctx context.Context, opts CostExplorerOptions) error {
	results := entity.NewResults(CostExplorerScript, entity.ServiceCostExplorer, entity.ServiceOrganizations)

	return uc.run(CostExplorerScript, ModeBase, opts.OutputDir, results, func() error {
		ce, err := uc.clients.CostExplorer(ctx)
		if err != nil {
			return err
		}
		org, err := uc.clients.Organizations(ctx)
		if err != nil {
			return err
		}

		now := uc.now()
		period := entity.NewCostPeriod(now, opts.Months)
		uc.console.LogInfo("Cost period: %s to %s (last day: %s)",
			period.StartString(), period.EndString(), period.LastDay.Format("2006-01-02"))

		projects, err := uc.tagValues(ctx, ce, period, entity.CostTagProjectName, results)
		if err != nil {
			return err
		}
		envTypes, err := uc.tagValues(ctx, ce, period, entity.CostTagEnvType, results)
		if err != nil {
			return err
		}
		uc.console.LogInfo("Tags meta: %s=%v, %s=%v", entity.CostTagProjectName, projects, entity.CostTagEnvType, envTypes)

		root := filepath.Join(opts.OutputDir, costResultsDir, now.Format("20060102")+"_"+CostExplorerScript)
		if err := uc.export.ResetDir(root); err != nil {
			return err
		}

		accounts, err := uc.activeAccounts(ctx, org, results)
		if err != nil {
			return err
		}

		responses := costResponses{}
		var summaries []*entity.CostSummary
		for i, account := range accounts {
			prefix := fmt.Sprintf("[%d/%d] %s", i+1, len(accounts), account.Label())
			uc.console.LogInfo("Looking at AWS account: %s", prefix)

			byProject, err := uc.accountCosts(ctx, ce, period, account, projects, envTypes, results)
			responses[account.Label()] = byProject
			if err != nil {
				results.Set(entity.ServiceCostExplorer, "get_cost_and_usage", responses)
				return err
			}

			accountSummaries, err := uc.writeAccountReport(filepath.Join(root, account.Label()), account, projects, envTypes, byProject)
			if err != nil {
				results.Set(entity.ServiceCostExplorer, "get_cost_and_usage", responses)
				return err
			}
			uc.displayTrend(account, accountSummaries)
			summaries = append(summaries, accountSummaries...)
		}
		results.Set(entity.ServiceCostExplorer, "get_cost_and_usage", responses)

		if opts.PDF && len(summaries) > 0 {
			path, err := uc.export.ExportCostSummaryToPDF(summaries, CostExplorerScript, root)
			if err != nil {
				return fmt.Errorf("error exporting cost summary PDF: %w", err)
			}
			uc.console.LogSuccess("Cost summary PDF saved to: %s", path)
		}
		return nil
	})
}

func (uc *CostExplorerUseCase) tagValues(ctx context.Context, ce repository.CostExplorerAPI, period entity.CostPeriod, key string, results *entity.Results) ([]string, error) {
	values, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]string, *string, error) {
		out, err := ce.GetTags(ctx, &costexplorer.GetTagsInput{
			TimePeriod:    costInterval(period),
			TagKey:        aws.String(key),
			NextPageToken: token,
		})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceCostExplorer, "get_tags", out)
		return out.Tags, out.NextPageToken, nil
	})
	if err != nil {
		results.SetError(entity.ServiceCostExplorer, "get_tags", err)
		return nil, fmt.Errorf("error getting Cost Explorer tags (for AWS tag: '%s'): %w", key, err)
	}
	return values, nil
}

func (uc *CostExplorerUseCase) activeAccounts(ctx context.Context, client repository.OrganizationsAPI, results *entity.Results) ([]entity.CostAccount, error) {
	all, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]orgtypes.Account, *string, error) {
		out, err := client.ListAccounts(ctx, &organizations.ListAccountsInput{NextToken: token})
		if err != nil {
			return nil, nil, err
		}
		results.Append(entity.ServiceOrganizations, "list_accounts", out)
		return out.Accounts, out.NextToken, nil
	})
	if err != nil {
		results.SetError(entity.ServiceOrganizations, "list_accounts", err)
		return nil, fmt.Errorf("error listing AWS Organizations accounts: %w", err)
	}

	var accounts []entity.CostAccount
	for _, a := range all {
		if a.Status != orgtypes.AccountStatusActive {
			continue
		}
		accounts = append(accounts, entity.CostAccount{ID: aws.ToString(a.Id), Name: aws.ToString(a.Name)})
	}
	return accounts, nil
}

// accountCosts consulta o custo mensal por serviço de cada par projeto/env da conta.
func (uc *CostExplorerUseCase) accountCosts(
	ctx context.Context,
	ce repository.CostExplorerAPI,
	period entity.CostPeriod,
	account entity.CostAccount,
	projects, envTypes []string,
	results *entity.Results,
) (map[string]map[string][]cetypes.ResultByTime, error) {
	byProject := make(map[string]map[string][]cetypes.ResultByTime, len(projects))
	progress := uc.console.Progress("Fetching cost and usage", len(projects)*len(envTypes))
	defer progress.Stop()

	for _, project := range projects {
		byEnv := make(map[string][]cetypes.ResultByTime, len(envTypes))
		byProject[entity.SanitizeTag(project)] = byEnv
		for _, env := range envTypes {
			input := costAndUsageInput(period, account.ID, project, env)
			rows, err := paginate.Collect(ctx, func(ctx context.Context, token *string) ([]cetypes.ResultByTime, *string, error) {
				page := *input
				page.NextPageToken = token
				out, err := ce.GetCostAndUsage(ctx, &page)
				if err != nil {
					return nil, nil, err
				}
				return out.ResultsByTime, out.NextPageToken, nil
			})
			if err != nil {
				results.SetError(entity.ServiceCostExplorer, "get_cost_and_usage", err)
				return byProject, fmt.Errorf("error getting cost and usage for %s %s %s: %w",
					account.Label(), entity.SanitizeTag(project), entity.SanitizeTag(env), err)
			}
			byEnv[entity.SanitizeTag(env)] = rows
			progress.Increment()
		}
	}
	return byProject, nil
}

func costInterval(period entity.CostPeriod) *cetypes.DateInterval {
	return &cetypes.DateInterval{
		Start: aws.String(period.StartString()),
		End:   aws.String(period.EndString()),
	}
}

func costAndUsageInput(period entity.CostPeriod, accountID, project, env string) *costexplorer.GetCostAndUsageInput {
	match := []cetypes.MatchOption{cetypes.MatchOptionEquals, cetypes.MatchOptionCaseSensitive}
	return &costexplorer.GetCostAndUsageInput{
		TimePeriod:  costInterval(period),
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		Filter: &cetypes.Expression{And: []cetypes.Expression{
			{Dimensions: &cetypes.DimensionValues{Key: cetypes.DimensionLinkedAccount, Values: []string{accountID}, MatchOptions: match}},
			{Tags: &cetypes.TagValues{Key: aws.String(entity.CostTagProjectName), Values: []string{project}, MatchOptions: match}},
			{Tags: &cetypes.TagValues{Key: aws.String(entity.CostTagEnvType), Values: []string{env}, MatchOptions: match}},
		}},
		GroupBy: []cetypes.GroupDefinition{{Type: cetypes.GroupDefinitionTypeDimension, Key: aws.String("SERVICE")}},
	}
}

// costPeriods lista os pares (início, fim) distintos das respostas, em ordem.
func costPeriods(byProject map[string]map[string][]cetypes.ResultByTime) [][2]string {
	seen := make(map[[2]string]struct{})
	for _, byEnv := range byProject {
		for _, rows := range byEnv {
			for _, r := range rows {
				if r.TimePeriod == nil {
					continue
				}
				seen[[2]string{aws.ToString(r.TimePeriod.Start), aws.ToString(r.TimePeriod.End)}] = struct{}{}
			}
		}
	}
	periods := make([][2]string, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		if periods[i][0] != periods[j][0] {
			return periods[i][0] < periods[j][0]
		}
		return periods[i][1] < periods[j][1]
	})
	return periods
}

// NewCostLine extrai os custos por serviço de uma resposta mensal.
func NewCostLine(account entity.CostAccount, project, env string, r cetypes.ResultByTime) entity.CostLine {
	line := entity.CostLine{Account: account, ProjectName: project, EnvType: env}
	if r.TimePeriod != nil {
		line.Start = aws.ToString(r.TimePeriod.Start)
		line.End = aws.ToString(r.TimePeriod.End)
	}
	for _, g := range r.Groups {
		m, ok := g.Metrics[costMetric]
		if !ok || len(g.Keys) == 0 {
			continue
		}
		line.Services = append(line.Services, entity.ServiceCost{
			ServiceName: g.Keys[0],
			Amount:      aws.ToString(m.Amount),
			Unit:        aws.ToString(m.Unit),
		})
	}
	return line
}

// writeAccountReport grava, por período, um CSV por projeto/env com custo e o CSV de resumo.
func (uc *CostExplorerUseCase) writeAccountReport(
	dir string,
	account entity.CostAccount,
	projects, envTypes []string,
	byProject map[string]map[string][]cetypes.ResultByTime,
) ([]*entity.CostSummary, error) {
	sanitisedProjects := sanitiseAll(projects)
	sanitisedEnvs := sanitiseAll(envTypes)

	var summaries []*entity.CostSummary
	for _, p := range costPeriods(byProject) {
		start, end := p[0], p[1]
		periodDir := filepath.Join(dir, start+"_"+end)
		summary := entity.NewCostSummary(account, start, end, sanitisedProjects, sanitisedEnvs)

		for _, project := range sanitisedProjects {
			projectDir := filepath.Join(periodDir, strings.Join([]string{start, end, CostExplorerScript, project}, "_"))
			if err := uc.export.ResetDir(projectDir); err != nil {
				return nil, err
			}
			for _, env := range sanitisedEnvs {
				line, ok := findCostLine(account, project, env, start, end, byProject[project][env])
				if !ok {
					continue
				}
				services := line.PositiveServices()
				if len(services) == 0 {
					continue
				}
				rows := make([][]string, 0, len(services))
				for _, s := range services {
					rows = append(rows, []string{s.ServiceName, s.Amount, s.Unit})
				}
				path := filepath.Join(projectDir, strings.Join([]string{start, end, CostExplorerScript, project, env}, "_")+".csv")
				uc.console.LogInfo("Writing new '.csv' file: '%s'", path)
				if err := uc.export.WriteCSV(path, []string{"Service", "Amount", "Unit"}, rows); err != nil {
					return nil, err
				}
				summary.Add(project, env, line.Total())
			}
			if _, err := uc.export.RemoveIfEmpty(projectDir); err != nil {
				return nil, err
			}
		}

		path := filepath.Join(periodDir, strings.Join([]string{start, end, CostExplorerScript}, "_")+".csv")
		uc.console.LogInfo("Writing new '.csv' file: '%s'", path)
		if err := uc.export.WriteCSV(path, summary.Header(), summary.Rows()); err != nil {
			return nil, err
		}
		uc.console.LogInfo("%s %s to %s: %s", account.Label(), start, end, formatCost(summary.Total()))
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func findCostLine(account entity.CostAccount, project, env, start, end string, rows []cetypes.ResultByTime) (entity.CostLine, bool) {
	for _, r := range rows {
		if r.TimePeriod == nil {
			continue
		}
		if aws.ToString(r.TimePeriod.Start) == start && aws.ToString(r.TimePeriod.End) == end {
			return NewCostLine(account, project, env, r), true
		}
	}
	return entity.CostLine{}, false
}

func sanitiseAll(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		s := entity.SanitizeTag(v)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func (uc *CostExplorerUseCase) displayTrend(account entity.CostAccount, summaries []*entity.CostSummary) {
	if len(summaries) == 0 {
		uc.console.LogWarning("No cost data available for account %s", account.Label())
		return
	}
	monthly := make([]types.MonthlyCost, 0, len(summaries))
	for _, s := range summaries {
		month := s.Start
		if t, err := time.Parse("2006-01-02", s.Start); err == nil {
			month = t.Format("Jan 2006")
		}
		monthly = append(monthly, types.MonthlyCost{Month: month, Cost: s.Total()})
	}
	uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Account: %s", account.Label()))
	uc.console.DisplayTrendBars(monthly)
}

func formatCost(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}
