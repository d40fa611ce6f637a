package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestParseArgsDefaults(t *testing.T) {
	o, err := parseArgs([]string{"font.ttf", "Title", "Sub", "out.png"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if o.props.TitleFontSize != 100 || o.props.SubtitleFontSize != 50 {
		t.Errorf("sizes = %v/%v, want 100/50", o.props.TitleFontSize, o.props.SubtitleFontSize)
	}
	if o.props.Title != "Title" || o.props.Subtitle != "Sub" || o.output != "out.png" {
		t.Errorf("unexpected options %+v", o)
	}
}

func TestParseArgsSizes(t *testing.T) {
	o, err := parseArgs([]string{"f", "T", "S", "o.png", "80", "30"})
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if o.props.TitleFontSize != 80 || o.props.SubtitleFontSize != 30 {
		t.Errorf("sizes = %v/%v, want 80/30", o.props.TitleFontSize, o.props.SubtitleFontSize)
	}
}

func TestParseArgsErrors(t *testing.T) {
	if _, err := parseArgs([]string{"f", "T", "S"}); !errors.Is(err, errUsage) {
		t.Errorf("short args error = %v, want errUsage", err)
	}
	if _, err := parseArgs([]string{"f", "T", "S", "o", "big"}); err == nil || errors.Is(err, errUsage) {
		t.Errorf("bad size error = %v, want a parse error", err)
	}
}

func TestRunWritesSVG(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(font, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "card.svg")
	o, _ := parseArgs([]string{font, "Hello", "World", out})
	if err := run(o); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Errorf("output is not SVG: %.60q", data)
	}
}
