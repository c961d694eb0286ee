package log

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Level is the severity of a log message.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is the level of a logger with no WithLevel option.
const DefaultLevel = LevelInfo

// Levels lists the names of the defined levels from least to most severe.
func Levels() []string {
	return []string{"trace", "debug", "info", "warn", "error"}
}

func (l Level) String() string {
	if l == LevelTrace {
		return "trace"
	}
	return strings.ToLower(slog.Level(l).String())
}

// ParseLevel parses a level name, case-insensitively. Names slog accepts,
// including offsets like "debug+2", are valid along with "trace". Invalid
// names give DefaultLevel.
func ParseLevel(s string) Level {
	if strings.EqualFold(s, "trace") {
		return LevelTrace
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return DefaultLevel
	}
	return Level(l)
}

// Format is the encoding of log output.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is the format of a logger with no WithFormat option.
const DefaultFormat = FormatText

// Formats lists the names of the defined formats.
func Formats() []string {
	return []string{"text", "json"}
}

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseFormat parses a format name. Invalid names give DefaultFormat.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return DefaultFormat
	}
}

// config is the configuration of a Logger. It is copied by value, so options
// never affect loggers that already exist.
type config struct {
	output     io.Writer
	timeLayout string
	level      Level
	format     Format
	caller     bool
}

// Option modifies a logger configuration.
type Option func(config) config

func apply(c config, opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}
	return c
}

func defaults(w io.Writer) config {
	if w == nil {
		w = io.Discard
	}
	return config{
		output:     w,
		timeLayout: time.RFC3339,
		level:      DefaultLevel,
		format:     DefaultFormat,
	}
}

func (c config) handler() slog.Handler {
	opts := slog.HandlerOptions{
		AddSource: c.caller,
		Level:     slog.Level(c.level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			switch a.Key {
			case slog.TimeKey:
				if c.timeLayout == "" {
					return slog.Attr{}
				}
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(c.timeLayout))
				}
			case slog.LevelKey:
				// slog would write trace as DEBUG-4.
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(strings.ToUpper(Level(l).String()))
				}
			}
			return a
		},
	}
	if c.format == FormatJSON {
		return slog.NewJSONHandler(c.output, &opts)
	}
	return slog.NewTextHandler(c.output, &opts)
}

// WithOutput sets the writer for log messages. A nil writer discards them.
func WithOutput(w io.Writer) Option {
	return func(c config) config {
		if w == nil {
			w = io.Discard
		}
		c.output = w
		return c
	}
}

// WithLevel sets the minimum level of messages to write.
func WithLevel(level Level) Option {
	return func(c config) config {
		c.level = level
		return c
	}
}

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(c config) config {
		c.format = format
		return c
	}
}

// WithTimeLayout sets the layout of timestamps. The layout is either the name
// of a layout in package time, such as "RFC3339" or "Kitchen", or a layout as
// for time.Time.Format. An empty layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(c config) config {
		c.timeLayout = TimeLayout(layout)
		return c
	}
}

// timeLayouts maps lower-case names to layouts.
var timeLayouts = map[string]string{
	"none":        "",
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"datetime":    time.DateTime,
	"timeonly":    time.TimeOnly,
	"kitchen":     time.Kitchen,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"unixdate":    time.UnixDate,
}

// TimeLayout resolves a named time layout. Names are case-insensitive. Any
// other string is returned unchanged as a custom layout, except that blank
// strings give the empty layout.
func TimeLayout(name string) string {
	t := strings.TrimSpace(name)
	if t == "" {
		return ""
	}
	if l, ok := timeLayouts[strings.ToLower(t)]; ok {
		return l
	}
	return name
}

// WithCaller sets whether messages include the source position of the call.
func WithCaller(enable bool) Option {
	return func(c config) config {
		c.caller = enable
		return c
	}
}
