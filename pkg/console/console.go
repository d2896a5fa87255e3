package console

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/diillson/aws-ops-scripts-go/internal/shared/types"
	"github.com/pterm/pterm"
)

const trendBarWidth = 40

// Console implementa o ConsoleInterface sobre o pterm.
type Console struct {
	out io.Writer
}

// NewConsole cria um Console que escreve no stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

func (c *Console) Print(a ...interface{})                 { fmt.Fprint(c.out, a...) }
func (c *Console) Printf(format string, a ...interface{}) { fmt.Fprintf(c.out, format, a...) }
func (c *Console) Println(a ...interface{})               { fmt.Fprintln(c.out, a...) }

func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.WithWriter(c.out).Printfln(format, a...)
}

func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.WithWriter(c.out).Printfln(format, a...)
}

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status mostra um spinner até Stop.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.WithWriter(c.out).Start(message)
	return &statusHandle{spinner: spinner}
}

func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

// Progress mostra uma barra com total passos.
func (c *Console) Progress(title string, total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithWriter(c.out).
		WithTotal(total).
		WithTitle(title).
		WithShowElapsedTime(true).
		WithShowCount(true).
		Start()
	return &progressHandle{bar: bar}
}

func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

func (h *progressHandle) Stop() {
	if h.bar != nil {
		_, _ = h.bar.Stop()
	}
}

// Table acumula colunas e linhas e renderiza uma tabela com borda.
type Table struct {
	columns []string
	rows    [][]string
}

func (c *Console) CreateTable() types.TableInterface {
	return &Table{}
}

func (t *Table) AddColumn(name string, _ ...interface{}) {
	t.columns = append(t.columns, name)
}

func (t *Table) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, row)
}

func (t *Table) Render() string {
	data := append(pterm.TableData{t.columns}, t.rows...)
	rendered, _ := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data).
		Srender()
	return rendered
}

// trendChange classifica a variação mês a mês: vermelho para alta, verde para queda,
// amarelo quando estável. Sem mês anterior o rótulo é vazio.
func trendChange(prev *float64, cur float64) (string, pterm.Color) {
	if prev == nil {
		return "", pterm.FgBlue
	}
	if *prev < 0.01 {
		if cur < 0.01 {
			return "0%", pterm.FgYellow
		}
		return "N/A", pterm.FgRed
	}

	pct := (cur - *prev) / *prev * 100
	switch {
	case math.Abs(pct) < 0.01:
		return "0%", pterm.FgYellow
	case pct > 999:
		return ">+999%", pterm.FgRed
	case pct < -999:
		return ">-999%", pterm.FgGreen
	case pct > 0:
		return fmt.Sprintf("+%.2f%%", pct), pterm.FgRed
	default:
		return fmt.Sprintf("%.2f%%", pct), pterm.FgGreen
	}
}

// DisplayTrendBars desenha uma barra por mês, proporcional ao maior custo.
func (c *Console) DisplayTrendBars(monthlyCosts []types.MonthlyCost) {
	maxCost := 0.0
	for _, mc := range monthlyCosts {
		maxCost = math.Max(maxCost, mc.Cost)
	}
	if maxCost == 0 {
		c.LogWarning("All costs are $0.00 for this period")
		return
	}

	data := pterm.TableData{{"Month", "Cost", "", "MoM Change"}}
	var prev *float64
	for _, mc := range monthlyCosts {
		label, colour := trendChange(prev, mc.Cost)
		bar := strings.Repeat("█", int(mc.Cost/maxCost*trendBarWidth))
		data = append(data, []string{
			mc.Month,
			fmt.Sprintf("$%.2f", mc.Cost),
			colour.Sprint(bar),
			colour.Sprint(label),
		})
		cost := mc.Cost
		prev = &cost
	}

	rendered, _ := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	panel := pterm.DefaultBox.
		WithTitle("AWS Cost Trend").
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(rendered)
	fmt.Fprintln(c.out, "\n"+panel)
}
