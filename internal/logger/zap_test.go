package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  defaultZapLevel,
		"":         defaultZapLevel,
	}
	for in, want := range tests {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewZapLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monteuros.log")
	l := newZapLogger(Options{Level: InfoLevel, File: path})

	l.Infow("scan saved", "model", "F470")
	l.Debugw("hidden")
	_ = l.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(b)
	if !strings.Contains(out, `"msg":"scan saved"`) || !strings.Contains(out, `"model":"F470"`) {
		t.Fatalf("log file missing entry: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry written at info level: %s", out)
	}
}

func TestOrDefault(t *testing.T) {
	if orDefault(0, 10) != 10 || orDefault(-1, 10) != 10 || orDefault(3, 10) != 3 {
		t.Fatal("orDefault returned unexpected value")
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Infow("ignored", "k", "v")
	if l.SugaredLogger == nil {
		t.Fatal("Nop returned nil sugared logger")
	}
}
