package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes documents to stdout and styled diagnostics to stderr.
// Documents always go out unstyled so they stay pipe- and LLM-safe.
type Printer struct {
	w      io.Writer
	errW   io.Writer
	styles *Styles
}

// Styles holds lipgloss styles for diagnostics.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
}

// NewPrinter creates a Printer. Colors are enabled only when isTTY is
// true; documents written with Print are never styled.
func NewPrinter(writer, errWriter io.Writer, isTTY bool) *Printer {
	styles := &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // Red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),           // Yellow
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Faint(true),
	}
	if !isTTY {
		styles.Error = lipgloss.NewStyle()
		styles.Warning = lipgloss.NewStyle()
		styles.Bold = lipgloss.NewStyle()
		styles.Muted = lipgloss.NewStyle()
	}
	return &Printer{w: writer, errW: errWriter, styles: styles}
}

// Styles exposes the printer's diagnostic styles.
func (p *Printer) Styles() *Styles {
	return p.styles
}

// Print writes a document to the main writer, ensuring it ends with a
// single newline.
func (p *Printer) Print(doc string) {
	if doc == "" || doc[len(doc)-1] == '\n' {
		mustWrite(fmt.Fprint(p.w, doc))
		return
	}
	mustWrite(fmt.Fprintln(p.w, doc))
}

// Error writes a styled error line to the error writer.
func (p *Printer) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	mustWrite(fmt.Fprintln(p.errW, p.styles.Error.Render("error:"), msg))
}

// Warn writes a styled warning line to the error writer.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	mustWrite(fmt.Fprintln(p.errW, p.styles.Warning.Render("warning:"), msg))
}

// IsTTY checks if a writer is a terminal.
// Returns true only for an os.File that is a terminal.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// mustWrite panics on write errors to stdout/stderr; there is no
// sensible recovery if the process cannot write its own output.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
