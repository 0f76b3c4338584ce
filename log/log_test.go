package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != DefaultLevel {
		t.Errorf("Level() = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller {
		t.Error("caller enabled by default")
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	logger.Trace("ignored")
	logger.Error("ignored", slog.String("key", "value"))

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Errorf("zero Logger reports %v/%v", logger.Level(), logger.Format())
	}

	if w := logger.With(slog.Int("n", 1)); w.Logger != nil {
		t.Error("With on zero Logger produced a live logger")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		log   func(Logger)
		want  bool
	}{
		{"trace_at_trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"trace_at_debug", LevelDebug, func(l Logger) { l.Trace("msg") }, false},
		{"debug_at_debug", LevelDebug, func(l Logger) { l.Debug("msg") }, true},
		{"info_at_error", LevelError, func(l Logger) { l.Info("msg") }, false},
		{"error_at_error", LevelError, func(l Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := strings.Contains(buf.String(), "msg"); got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON)).Trace("deep")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", rec["level"])
	}
}

func TestLogger_WithFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		Make(&buf, WithLevel(LevelInfo), WithFormat(FormatJSON)).
			Info("test message", slog.String("key", "value"))

		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}

		if rec["msg"] != "test message" || rec["key"] != "value" {
			t.Errorf("record = %v", rec)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		Make(&buf, WithLevel(LevelInfo), WithFormat(FormatText), WithPretty(false)).
			Info("test message", slog.String("key", "value"))

		out := buf.String()
		if !strings.Contains(out, `msg="test message"`) || !strings.Contains(out, "key=value") {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("pretty", func(t *testing.T) {
		var buf bytes.Buffer

		Make(&buf, WithLevel(LevelInfo), WithTimeLayout("none")).
			Info("test message", slog.String("key", "value"), slog.Bool("ok", true))

		want := "level=INFO msg=test message key=value ok=true\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})
}

func TestLogger_WithTimeLayout(t *testing.T) {
	tests := []struct {
		layout string
		check  func(string) bool
	}{
		{"RFC3339", func(s string) bool { return strings.Contains(s, "T") }},
		{"rfc-3339-nano", func(s string) bool { return strings.Contains(s, ".") }},
		{"kitchen", func(s string) bool { return strings.HasSuffix(s, "M") }},
		{"none", func(s string) bool { return s == "" }},
		{"", func(s string) bool { return s == "" }},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithLevel(LevelInfo), WithFormat(FormatJSON), WithTimeLayout(tt.layout)).Info("x")

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatal(err)
			}

			ts, _ := rec["time"].(string)
			if !tt.check(ts) {
				t.Errorf("time = %q", ts)
			}
		})
	}
}

func TestLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelInfo), WithFormat(FormatJSON), WithCaller(true)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("source does not name the calling file: %s", buf.String())
	}

	buf.Reset()

	Make(&buf, WithLevel(LevelInfo), WithFormat(FormatJSON)).Info("here")

	if strings.Contains(buf.String(), "source") {
		t.Errorf("source included when disabled: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelInfo), WithTimeLayout("none"))
	base.With(slog.String("component", "repl")).
		With(slog.Group("req", slog.Int("id", 7))).
		Info("ready", slog.String("mode", "plain"))

	want := "level=INFO msg=ready component=repl req.id=7 mode=plain\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError)).Wrap(WithLevel(LevelDebug), WithFormat(FormatJSON))

	if l.Level() != LevelDebug || l.Format() != FormatJSON {
		t.Fatalf("Wrap() = %v/%v", l.Level(), l.Format())
	}

	l.Debug("wrapped")

	if !strings.Contains(buf.String(), `"msg":"wrapped"`) {
		t.Errorf("output = %q", buf.String())
	}
}
