package summary

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// separatorWidth is the width of the dashed lines in the text report.
const separatorWidth = 24

// Options controls how a summary is presented.
type Options struct {
	Currency Currency
	Locale   Locale
}

// Renderer writes a summary report. Implementations must write nothing on error
// paths before they know the report is complete.
type Renderer interface {
	Render(w io.Writer, res *Result, f Filter, opts Options) error
}

// RendererFunc is a function that implements Renderer
type RendererFunc func(w io.Writer, res *Result, f Filter, opts Options) error

func (fn RendererFunc) Render(w io.Writer, res *Result, f Filter, opts Options) error {
	return fn(w, res, f, opts)
}

// renderers is the registry of available output formats
var renderers = map[string]Renderer{}

// RegisterRenderer registers a renderer under an output format name
func RegisterRenderer(name string, r Renderer) {
	renderers[name] = r
}

// GetRenderer returns the renderer for the given output format
func GetRenderer(format string) (Renderer, error) {
	r, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("unknown output format: %s (available: %v)", format, AvailableFormats())
	}
	return r, nil
}

// AvailableFormats returns the registered output format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range renderers {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// EmptyMessage is the single line printed when nothing matched, naming the active filters.
func EmptyMessage(f Filter) string {
	desc := f.Description()
	if len(desc) == 0 {
		return "No transactions found."
	}
	return "No transactions found with " + strings.Join(desc, " and ") + "."
}

// RenderText writes the plain report: per category a "<category> - <total>" header,
// then each item with its fields, each block closed by a dashed separator.
func RenderText(w io.Writer, res *Result, f Filter, opts Options) error {
	var b strings.Builder
	if res.Empty() {
		b.WriteString(EmptyMessage(f))
		b.WriteByte('\n')
		_, err := io.WriteString(w, b.String())
		return err
	}

	sep := strings.Repeat("-", separatorWidth)
	for _, acc := range res.Categories() {
		fmt.Fprintf(&b, "%s - %s\n", acc.Category, opts.Currency.Format(acc.TotalCents))
		b.WriteString(sep + "\n")
		for _, item := range acc.Items {
			fmt.Fprintf(&b, "-%s\n", item.Name)
			fmt.Fprintf(&b, "  category: %s\n", item.Category)
			fmt.Fprintf(&b, "  amount: %s\n", opts.Currency.FormatMoney(item.Amount))
			fmt.Fprintf(&b, "  timestamp added: %s\n", opts.Locale.FormatTime(item.Timestamp))
			b.WriteString(sep + "\n")
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func init() {
	RegisterRenderer("text", RendererFunc(RenderText))
	RegisterRenderer("table", RendererFunc(RenderTable))
	RegisterRenderer("json", RendererFunc(RenderJSON))
}
