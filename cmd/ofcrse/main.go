package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ofcrse/ofcrse"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := serve(); err != nil {
			logrus.WithError(err).Fatal("server stopped")
		}
	case "build":
		outDir := ""
		if len(os.Args) > 2 {
			outDir = os.Args[2]
		}
		if err := build(outDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("ofcrse %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func serve() error {
	app, err := ofcrse.New(ofcrse.ConfigFromEnv())
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Echo.Shutdown(shutdownCtx)
}

func build(outDir string) error {
	cfg := ofcrse.ConfigFromEnv()
	if outDir == "" {
		outDir = cfg.DistDir
	}
	app, err := ofcrse.New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	written, err := app.Build(outDir)
	for _, f := range written {
		fmt.Println(f)
	}
	return err
}

func printUsage() {
	fmt.Println(`ofcrse - site server and cover image builder

Usage:
  ofcrse <command> [arguments]

Commands:
  serve           Serve the site, cover images, RSS and sitemap
  build [outdir]  Write cover images, rss.xml and sitemap.xml (default: DIST_DIR)
  version         Print the ofcrse version
  help            Show this help message

Environment:
  PORT, SITE_URL, CONTENT_DIR, DIST_DIR, FONT_PATH, SHORTLINKS_FILE,
  GOATCOUNTER_URL, COVER_BYLINE, WATCH_CONTENT (also read from .env)`)
}
