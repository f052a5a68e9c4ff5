package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used to colour pretty output.
// Styles are bound to a renderer for the handler's writer, so output to a
// non-terminal is left uncoloured.
type palette struct {
	key, str, num, yes, no, dur, when paint
	trace, debug, info, warn, err     paint
}

// paint renders each line of its input separately, leaving line widths and
// tabs as they are.
type paint struct{ lipgloss.Style }

func (p paint) Render(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = p.Style.Render(line)
	}

	return strings.Join(lines, "\n")
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) paint {
		return paint{
			r.NewStyle().
				Foreground(lipgloss.Color(c)).
				TabWidth(lipgloss.NoTabConversion),
		}
	}

	return palette{
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		yes:   fg("2"),
		no:    fg("1"),
		dur:   fg("5"),
		when:  fg("4"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  paint{fg("3").Bold(true)},
		err:   paint{fg("1").Bold(true)},
	}
}

func (p palette) level(level slog.Level) paint {
	switch {
	case level >= slog.LevelError:
		return p.err
	case level >= slog.LevelWarn:
		return p.warn
	case level >= slog.LevelInfo:
		return p.info
	case level >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyBase is the state shared by both pretty handlers.
type prettyBase struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  palette
	attrs  []slog.Attr
	prefix string // dotted group prefix for keys
}

func newPrettyBase(w io.Writer, opts *slog.HandlerOptions) prettyBase {
	return prettyBase{
		opts:  *opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: newPalette(w),
	}
}

func (h prettyBase) enabled(level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h prettyBase) withAttrs(attrs []slog.Attr) prettyBase {
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		h.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], a)
	}

	return h
}

func (h prettyBase) withGroup(name string) prettyBase {
	if name != "" {
		h.prefix += name + "."
	}

	return h
}

func (h prettyBase) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

// header returns the built-in attributes of r after ReplaceAttr.
func (h prettyBase) header(r slog.Record) []slog.Attr {
	head := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		head = append(head, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	head = append(head, h.replace(slog.Any(slog.LevelKey, r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			head = append(head, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	return append(head, slog.String(slog.MessageKey, r.Message))
}

// flatten resolves LogValuers and expands groups into dotted keys.
func flatten(prefix string, a slog.Attr, yield func(slog.Attr)) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() != slog.KindGroup {
		a.Key = prefix + a.Key
		yield(a)

		return
	}

	sub := prefix
	if a.Key != "" {
		sub += a.Key + "."
	}

	for _, g := range a.Value.Group() {
		flatten(sub, g, yield)
	}
}

func (h prettyBase) write(buf *bytes.Buffer) error {
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct{ prettyBase }

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{newPrettyBase(w, opts)}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	for _, a := range h.header(r) {
		flatten("", a, func(a slog.Attr) { h.writeAttr(buf, a, r.Level) })
	}

	for _, a := range h.attrs {
		flatten("", a, func(a slog.Attr) { h.writeAttr(buf, a, r.Level) })
	}

	r.Attrs(func(a slog.Attr) bool {
		flatten(h.prefix, a, func(a slog.Attr) { h.writeAttr(buf, a, r.Level) })

		return true
	})

	return h.write(buf)
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{h.withAttrs(attrs)}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{h.withGroup(name)}
}

func (h *prettyTextHandler) writeAttr(
	buf *bytes.Buffer,
	a slog.Attr,
	level slog.Level,
) {
	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(h.style.key.Render(a.Key))
	buf.WriteByte('=')

	if a.Key == slog.LevelKey {
		buf.WriteString(h.style.level(level).Render(a.Value.String()))

		return
	}

	buf.WriteString(h.style.value(a.Value))
}

// value renders v without quotes in the colour of its kind.
func (p palette) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return p.str.Render(v.String())

	case slog.KindInt64:
		return p.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return p.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return p.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return p.yes.Render("true")
		}

		return p.no.Render("false")

	case slog.KindDuration:
		return p.dur.Render(v.Duration().String())

	case slog.KindTime:
		return p.when.Render(v.Time().String())

	default:
		return p.str.Render(v.String())
	}
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct{ prettyBase }

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{newPrettyBase(w, opts)}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.enabled(level)
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	first := true
	field := func(a slog.Attr) { h.writeJSONAttr(buf, a, r.Level, &first) }

	for _, a := range h.header(r) {
		flatten("", a, field)
	}

	for _, a := range h.attrs {
		flatten("", a, field)
	}

	r.Attrs(func(a slog.Attr) bool {
		flatten(h.prefix, a, field)

		return true
	})

	buf.WriteString("\n}")

	return h.write(buf)
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{h.withAttrs(attrs)}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{h.withGroup(name)}
}

func (h *prettyJSONHandler) writeJSONAttr(
	buf *bytes.Buffer,
	a slog.Attr,
	level slog.Level,
	first *bool,
) {
	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	buf.WriteString("  ")
	buf.WriteString(h.style.key.Render(strconv.Quote(a.Key)))
	buf.WriteString(": ")

	switch v := a.Value; {
	case a.Key == slog.LevelKey:
		buf.WriteString(h.style.level(level).Render(strconv.Quote(v.String())))
	case v.Kind() == slog.KindAny && v.Any() == nil:
		buf.WriteString(h.style.key.Render("null"))
	case v.Kind() == slog.KindString, v.Kind() == slog.KindAny,
		v.Kind() == slog.KindDuration, v.Kind() == slog.KindTime:
		buf.WriteString(h.style.str.Render(strconv.Quote(v.String())))
	default:
		buf.WriteString(h.style.value(v))
	}
}
