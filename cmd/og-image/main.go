// Command og-image writes a social card with a title and subtitle.
//
// The card is drawn as SVG and handed to resvg on stdin. Without resvg on
// PATH the built-in rasterizer writes the PNG instead. An OUTPUT ending in
// .svg gets the SVG itself.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ofcrse/ofcrse/card"
	"github.com/ofcrse/ofcrse/render"
)

const usage = "USAGE: og-image FONT_TTF TITLE SUBTITLE OUTPUT [TITLE_FONT_SIZE] [SUBTITLE_FONT_SIZE]"

type options struct {
	font   string
	output string
	props  card.Properties
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Println(usage)
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("not enough arguments")

func parseArgs(args []string) (options, error) {
	if len(args) < 4 {
		return options{}, errUsage
	}
	o := options{
		font:   args[0],
		output: args[3],
		props: card.Properties{
			Title:            args[1],
			Subtitle:         args[2],
			TitleFontSize:    100,
			SubtitleFontSize: 50,
		},
	}
	sizes := []*float64{&o.props.TitleFontSize, &o.props.SubtitleFontSize}
	for i, arg := range args[4:] {
		if i >= len(sizes) {
			break
		}
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil || v <= 0 {
			return options{}, fmt.Errorf("invalid font size %q", arg)
		}
		*sizes[i] = v
	}
	return o, nil
}

func run(o options) error {
	font, err := os.ReadFile(o.font)
	if err != nil {
		return err
	}
	r, err := render.New(font)
	if err != nil {
		return err
	}
	tree := card.Build(o.props)

	svg, err := r.SVG(tree)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(o.output), ".svg") {
		return os.WriteFile(o.output, svg, 0o644)
	}

	resvg, err := exec.LookPath("resvg")
	if err != nil {
		logrus.Info("resvg not found, using the built-in rasterizer")
		png, err := r.PNG(tree)
		if err != nil {
			return err
		}
		return os.WriteFile(o.output, png, 0o644)
	}

	cmd := exec.Command(resvg, "-", o.output)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("resvg: %w", err)
	}
	return nil
}
