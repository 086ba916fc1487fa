package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fractal/internal/config"
	"github.com/san-kum/fractal/internal/evaluate"
	"github.com/san-kum/fractal/internal/field"
	"github.com/san-kum/fractal/internal/render"
	"github.com/san-kum/fractal/internal/stats"
)

const (
	defaultCols = 96
	defaultRows = 32
	colorLevels = 32
	minBudget   = 16
	maxBudget   = 1 << 16
)

// Explorer is an interactive terminal view of the escape-time field.
// Panning and zooming re-evaluate the visible region; the sampling
// resolution follows the terminal size.
type Explorer struct {
	registry  *evaluate.Registry
	names     []string
	stratIdx  int
	strategy  evaluate.Strategy
	workers   int
	palette   render.Palette
	centerRe  float64
	centerIm  float64
	spanRe    float64
	budget    int
	radius    float64
	cols      int
	rows      int
	fld       *field.Field
	elapsed   time.Duration
	err       error
	showHelp  bool
	cellCache map[int]string
}

// NewExplorer starts from the region and budget in cfg.
func NewExplorer(cfg *config.Config) Explorer {
	registry := evaluate.NewRegistry()
	names := registry.List()

	stratIdx := 0
	for i, name := range names {
		if name == cfg.Strategy {
			stratIdx = i
		}
	}
	strategy, _ := registry.Get(names[stratIdx], cfg.Workers)

	palette, err := render.GetPalette(cfg.Palette)
	if err != nil {
		palette = render.Heat
	}

	e := Explorer{
		registry:  registry,
		names:     names,
		stratIdx:  stratIdx,
		strategy:  strategy,
		workers:   cfg.Workers,
		palette:   palette,
		centerRe:  (cfg.Region.RealMin + cfg.Region.RealMax) / 2,
		centerIm:  (cfg.Region.ImagMin + cfg.Region.ImagMax) / 2,
		spanRe:    cfg.Region.RealMax - cfg.Region.RealMin,
		budget:    cfg.Budget,
		radius:    cfg.Radius,
		cols:      defaultCols,
		rows:      defaultRows,
		cellCache: make(map[int]string),
	}
	e.evaluateField()
	return e
}

func (e Explorer) Init() tea.Cmd { return nil }

func (e Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cols := msg.Width - 36
		rows := msg.Height - 4
		if cols > 16 && rows > 8 {
			e.cols, e.rows = cols, rows
			e.evaluateField()
		}
		return e, nil

	case tea.KeyMsg:
		step := e.spanRe * 0.1
		switch msg.String() {
		case "q", "ctrl+c":
			return e, tea.Quit
		case "left", "h":
			e.centerRe -= step
		case "right", "l":
			e.centerRe += step
		case "up", "k":
			e.centerIm -= step
		case "down", "j":
			e.centerIm += step
		case "+", "=":
			e.spanRe *= 0.8
		case "-", "_":
			e.spanRe *= 1.25
		case "[":
			if e.budget/2 >= minBudget {
				e.budget /= 2
			}
		case "]":
			if e.budget*2 <= maxBudget {
				e.budget *= 2
			}
		case "s":
			e.stratIdx = (e.stratIdx + 1) % len(e.names)
			e.strategy, _ = e.registry.Get(e.names[e.stratIdx], e.workers)
		case "r":
			e.centerRe, e.centerIm = -0.75, 0.0
			e.spanRe = config.FullView.RealMax - config.FullView.RealMin
		case "?":
			e.showHelp = !e.showHelp
			return e, nil
		default:
			return e, nil
		}
		e.evaluateField()
		return e, nil
	}

	return e, nil
}

// viewGrid derives the sampled rectangle from the view center and span.
// The imaginary span is stretched for the ~2:1 aspect of terminal cells.
func (e *Explorer) viewGrid() field.Grid {
	spanIm := e.spanRe * 2 * float64(e.rows) / float64(e.cols)
	return field.Grid{
		Height:  e.rows,
		Width:   e.cols,
		RealMin: e.centerRe - e.spanRe/2,
		RealMax: e.centerRe + e.spanRe/2,
		ImagMin: e.centerIm - spanIm/2,
		ImagMax: e.centerIm + spanIm/2,
	}
}

func (e *Explorer) evaluateField() {
	start := time.Now()
	fld, err := e.strategy.Evaluate(context.Background(), e.viewGrid(), evaluate.Options{
		Budget: e.budget,
		Radius: e.radius,
	})
	e.elapsed = time.Since(start)
	e.fld, e.err = fld, err
	e.cellCache = make(map[int]string)
}

// cell renders one field cell, caching styles per quantized color level.
func (e *Explorer) cell(count int) string {
	level := colorLevels
	if count < e.budget {
		level = count * colorLevels / e.budget
	}
	if s, ok := e.cellCache[level]; ok {
		return s
	}

	var rendered string
	if level == colorLevels {
		rendered = " "
	} else {
		c := e.palette(level*e.budget/colorLevels, e.budget)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
		rendered = style.Render("█")
	}
	e.cellCache[level] = rendered
	return rendered
}

func (e Explorer) View() string {
	if e.err != nil {
		return errorStyle.Render(fmt.Sprintf("evaluation failed: %v", e.err)) + "\n"
	}
	if e.fld == nil {
		return "evaluating...\n"
	}

	var canvas strings.Builder
	for row := 0; row < e.fld.Height; row++ {
		for _, count := range e.fld.Row(row) {
			canvas.WriteString(e.cell(count))
		}
		canvas.WriteByte('\n')
	}

	panel := e.statsPanel()
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas.String(), statsStyle.Render(panel))

	help := "q quit · arrows/hjkl pan · +/- zoom · [/] budget · s strategy · r reset · ? help"
	if e.showHelp {
		help = strings.Join([]string{
			"arrows/hjkl  pan by 10% of the view",
			"+/-          zoom in / out",
			"[/]          halve / double iteration budget",
			"s            cycle evaluation strategy",
			"r            reset to the full view",
			"q            quit",
		}, "\n")
	}

	return headerStyle.Render("fractal explorer") + "\n" + body + helpStyle.Render(help) + "\n"
}

func (e *Explorer) statsPanel() string {
	line := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	bounded := stats.BoundedFraction(e.fld, e.budget)
	rows := []string{
		line("center", fmt.Sprintf("%.6f %+.6fi", e.centerRe, e.centerIm)),
		line("span", fmt.Sprintf("%.2e", e.spanRe)),
		line("budget", fmt.Sprintf("%d", e.budget)),
		line("strategy", e.names[e.stratIdx]),
		line("grid", fmt.Sprintf("%dx%d", e.cols, e.rows)),
		line("eval", e.elapsed.Round(time.Microsecond).String()),
		line("bounded", fmt.Sprintf("%.1f%%", 100*bounded)),
	}
	return strings.Join(rows, "\n")
}

// RunExplorer launches the interactive viewer.
func RunExplorer(cfg *config.Config) error {
	p := tea.NewProgram(NewExplorer(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
