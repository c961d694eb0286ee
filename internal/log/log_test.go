package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestMakeDefaults(t *testing.T) {
	var buf bytes.Buffer
	l := Make(&buf)
	if l.Level() != LevelInfo {
		t.Errorf("want level info, got %v", l.Level())
	}
	if l.Format() != FormatText {
		t.Errorf("want format text, got %v", l.Format())
	}
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug message written at info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info message not written")
	}
}

func TestLevels(t *testing.T) {
	cases := []struct {
		level Level
		write func(Logger, string)
		name  string
		shown bool
	}{
		{LevelTrace, func(l Logger, s string) { l.Trace(s) }, "TRACE", true},
		{LevelDebug, func(l Logger, s string) { l.Trace(s) }, "TRACE", false},
		{LevelDebug, func(l Logger, s string) { l.Debug(s) }, "DEBUG", true},
		{LevelWarn, func(l Logger, s string) { l.Info(s) }, "INFO", false},
		{LevelWarn, func(l Logger, s string) { l.Warn(s) }, "WARN", true},
		{LevelError, func(l Logger, s string) { l.Error(s) }, "ERROR", true},
	}
	for _, c := range cases {
		t.Run(c.level.String()+"/"+c.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := Make(&buf, WithLevel(c.level), WithTimeLayout(""))
			c.write(l, "msg")
			got := buf.String()
			if !c.shown {
				if got != "" {
					t.Errorf("want nothing, got %q", got)
				}
				return
			}
			if !strings.Contains(got, "level="+c.name) {
				t.Errorf("want level %s in %q", c.name, got)
			}
			if strings.Contains(got, "time=") {
				t.Errorf("empty time layout still wrote time: %q", got)
			}
		})
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Make(&buf, WithFormat(FormatJSON)).With(slog.String("cmd", "eval"))
	l.Info("result", slog.Float64("value", 110))
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if m["msg"] != "result" || m["cmd"] != "eval" || m["value"] != 110.0 || m["level"] != "INFO" {
		t.Errorf("wrong fields: %v", m)
	}
}

func TestCaller(t *testing.T) {
	var buf bytes.Buffer
	l := Make(&buf, WithCaller(true))
	l.Info("here")
	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("want caller in log_test.go, got %q", buf.String())
	}
}

func TestTimeLayout(t *testing.T) {
	cases := []struct {
		name   string
		layout string
		want   string
	}{
		{"rfc3339", "RFC3339", time.RFC3339},
		{"kitchen-lower", "kitchen", time.Kitchen},
		{"datetime-space", " DateTime ", time.DateTime},
		{"none", "none", ""},
		{"blank", "  ", ""},
		{"custom", "15:04", "15:04"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := TimeLayout(c.layout); got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}

	var buf bytes.Buffer
	l := Make(&buf, WithTimeLayout("none"))
	l.Info("msg")
	if strings.Contains(buf.String(), "time=") {
		t.Errorf("time written with layout none: %q", buf.String())
	}
	buf.Reset()
	l = Make(&buf, WithTimeLayout("Kitchen"))
	l.Info("msg")
	if !strings.Contains(buf.String(), "M ") {
		t.Errorf("want kitchen time in %q", buf.String())
	}
}

func TestWrapIsolated(t *testing.T) {
	var a, b bytes.Buffer
	l := Make(&a)
	m := l.Wrap(WithOutput(&b), WithLevel(LevelDebug))
	l.Debug("one")
	m.Debug("two")
	if a.Len() != 0 {
		t.Errorf("original logger changed: %q", a.String())
	}
	if !strings.Contains(b.String(), "two") {
		t.Errorf("wrapped logger did not write: %q", b.String())
	}
}

func TestZeroLogger(t *testing.T) {
	var l Logger
	l.Error("nothing")
	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("zero logger reports non-default configuration")
	}
	l = l.With(slog.Int("x", 1))
	l.Info("still nothing")
}

func TestParse(t *testing.T) {
	levels := map[string]Level{
		"trace":   LevelTrace,
		"TRACE":   LevelTrace,
		"debug":   LevelDebug,
		"Info":    LevelInfo,
		"warn":    LevelWarn,
		"error":   LevelError,
		"debug+4": LevelInfo,
		"bogus":   DefaultLevel,
	}
	for s, want := range levels {
		if got := ParseLevel(s); got != want {
			t.Errorf("ParseLevel(%q): want %v, got %v", s, want, got)
		}
	}
	for _, s := range Levels() {
		if got := ParseLevel(s).String(); got != s {
			t.Errorf("level %q round trips to %q", s, got)
		}
	}
	for _, s := range Formats() {
		if got := ParseFormat(s).String(); got != s {
			t.Errorf("format %q round trips to %q", s, got)
		}
	}
	if ParseFormat(" JSON ") != FormatJSON {
		t.Error("format parsing is not lenient")
	}
}

func TestPackageFunctions(t *testing.T) {
	var buf bytes.Buffer
	old := Default()
	defer func() {
		mu.Lock()
		defaultLog = old
		mu.Unlock()
	}()
	Config(WithOutput(&buf), WithLevel(LevelDebug), WithFormat(FormatJSON), WithCaller(true))
	ctx := context.Background()
	cases := []struct {
		fn    func(string, ...slog.Attr)
		level string
	}{
		{Debug, "DEBUG"},
		{Info, "INFO"},
		{Warn, "WARN"},
		{Error, "ERROR"},
		{func(msg string, attrs ...slog.Attr) { DebugContext(ctx, msg, attrs...) }, "DEBUG"},
		{func(msg string, attrs ...slog.Attr) { InfoContext(ctx, msg, attrs...) }, "INFO"},
		{func(msg string, attrs ...slog.Attr) { ErrorContext(ctx, msg, attrs...) }, "ERROR"},
	}
	for _, c := range cases {
		buf.Reset()
		c.fn("msg", slog.String("key", "value"))
		out := buf.String()
		if !strings.Contains(out, `"level":"`+c.level+`"`) || !strings.Contains(out, `"key":"value"`) {
			t.Errorf("%s: got %q", c.level, out)
		}
		if !strings.Contains(out, `"source"`) {
			t.Errorf("%s: no source in %q", c.level, out)
		}
	}
	buf.Reset()
	Trace("quiet")
	if buf.Len() != 0 {
		t.Errorf("trace written at debug level: %q", buf.String())
	}
}
