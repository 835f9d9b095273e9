package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	phaseStyle   = lipgloss.NewStyle().Bold(true)
	pairStyle    = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	summaryStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Console renders progress events as styled lines on a writer. It is the
// only component that prints; everything else reports through it.
type Console struct {
	w     io.Writer
	phase int
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Banner prints the tool header.
func (c *Console) Banner(version string) {
	fmt.Fprintln(c.w, titleStyle.Render("guid-corrector "+version))
}

// PhaseStarted prints a numbered phase header.
func (c *Console) PhaseStarted(name string, total int) {
	c.phase++

	if total >= 0 {
		fmt.Fprintf(c.w, "%s\n", phaseStyle.Render(fmt.Sprintf("[%d] %s (%d items)", c.phase, name, total)))
	} else {
		fmt.Fprintf(c.w, "%s\n", phaseStyle.Render(fmt.Sprintf("[%d] %s", c.phase, name)))
	}
}

// PairMapped prints one correlation line.
func (c *Console) PairMapped(stem, old, new string) {
	fmt.Fprintf(c.w, "  %s\n", pairStyle.Render(fmt.Sprintf("%s: %s -> %s", stem, old, new)))
}

// FileProcessed prints updates and failures; untouched files stay quiet.
func (c *Console) FileProcessed(path string, modified bool, err error) {
	switch {
	case err != nil:
		fmt.Fprintf(c.w, "  %s\n", failStyle.Render(fmt.Sprintf("failed %s: %v", path, err)))
	case modified:
		fmt.Fprintf(c.w, "  %s\n", okStyle.Render("updated "+path))
	}
}

// RunFinished prints the final summary box.
func (c *Console) RunFinished(mappings, processed, modified, failed int) {
	body := fmt.Sprintf("mappings: %d\nprocessed: %d\nmodified: %d\nfailed: %d",
		mappings, processed, modified, failed)
	fmt.Fprintln(c.w, summaryStyle.Render(body))
}
