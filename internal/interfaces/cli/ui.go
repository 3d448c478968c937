package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Reporter writes progress lines to the terminal. It implements
// ports.Reporter and plugin.Printer.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer

	infoStyle    lipgloss.Style
	warnStyle    lipgloss.Style
	successStyle lipgloss.Style
	failStyle    lipgloss.Style
}

// NewReporter creates a reporter writing to out
func NewReporter(out io.Writer) *Reporter {
	renderer := lipgloss.NewRenderer(out)
	return &Reporter{
		out:          out,
		infoStyle:    renderer.NewStyle().Foreground(lipgloss.Color("245")),
		warnStyle:    renderer.NewStyle().Foreground(lipgloss.Color("214")),
		successStyle: renderer.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		failStyle:    renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

func (r *Reporter) Info(message string) {
	r.write(r.infoStyle, "", message)
}

func (r *Reporter) Warn(message string) {
	r.write(r.warnStyle, "", message)
}

func (r *Reporter) Succeed(message string) {
	r.write(r.successStyle, "✔ ", message)
}

func (r *Reporter) Fail(message string) {
	r.write(r.failStyle, "✖ ", message)
}

func (r *Reporter) write(style lipgloss.Style, symbol, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, style.Render(symbol+message))
}
