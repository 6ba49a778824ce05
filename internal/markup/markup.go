// Package markup turns the simple HTML the assistant returns into styled
// terminal text.
package markup

import (
	"strings"
	"sync"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"

	"github.com/nhath/ezchat/internal/chat"
)

// Options controls a Renderer
type Options struct {
	Style    string // glamour standard style: "dark" or "light"
	Width    int
	Sanitize bool
}

// Renderer converts message markup to ANSI text. Rendered output is cached
// per content string until the style or width changes.
type Renderer struct {
	mu     sync.Mutex
	opts   Options
	conv   *converter.Converter
	term   *glamour.TermRenderer
	policy *bluemonday.Policy
	cache  map[string]string
}

func New(opts Options) *Renderer {
	if opts.Style == "" {
		opts.Style = "dark"
	}
	r := &Renderer{
		opts: opts,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		cache: make(map[string]string),
	}
	if opts.Sanitize {
		r.policy = bluemonday.UGCPolicy()
	}
	return r
}

// SetStyle switches the glamour style and drops the cache
func (r *Renderer) SetStyle(style string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if style == r.opts.Style {
		return
	}
	r.opts.Style = style
	r.reset()
}

// SetWidth sets the word-wrap width and drops the cache
func (r *Renderer) SetWidth(width int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == r.opts.Width {
		return
	}
	r.opts.Width = width
	r.reset()
}

func (r *Renderer) reset() {
	r.term = nil
	r.cache = make(map[string]string)
}

// Markdown converts HTML content to markdown, sanitizing first when enabled
func (r *Renderer) Markdown(content string) (string, error) {
	if r.policy != nil {
		content = r.policy.Sanitize(content)
	}
	md, err := r.conv.ConvertString(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// Render returns terminal output for content. On any conversion failure the
// plain text of content is returned instead.
func (r *Renderer) Render(content string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if out, ok := r.cache[content]; ok {
		return out
	}

	out, err := r.render(content)
	if err != nil {
		out = chat.PlainText(content)
	}
	r.cache[content] = out
	return out
}

func (r *Renderer) render(content string) (string, error) {
	md, err := r.Markdown(content)
	if err != nil {
		return "", err
	}
	if r.term == nil {
		opts := []glamour.TermRendererOption{glamour.WithStandardStyle(r.opts.Style)}
		if r.opts.Width > 0 {
			opts = append(opts, glamour.WithWordWrap(r.opts.Width))
		}
		term, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			return "", err
		}
		r.term = term
	}
	out, err := r.term.Render(md)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
