// Command textfxd serves the textfx render API over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/gogpu/textfx"
	"github.com/gogpu/textfx/fonts"
	"github.com/gogpu/textfx/internal/server"
)

func main() {
	var (
		addr      = flag.String("addr", defaultAddr(), "listen address (PORT overrides the default port)")
		fontDir   = flag.String("fonts", "fonts", "font directory")
		provision = flag.Bool("provision", true, "download the default fonts before serving")
		maxBody   = flag.Int64("max-body", server.DefaultMaxBody, "maximum request body in bytes")
		level     = flag.String("log-level", "info", "log level: debug, info, warn, error")
	)
	flag.Parse()

	log, err := newLogger(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	textfx.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, *addr, *fontDir, *provision, *maxBody); err != nil {
		log.Error("textfxd: exiting", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, addr, dir string, provision bool, maxBody int64) error {
	if provision {
		if err := fonts.Provision(ctx, dir, fonts.DefaultSources); err != nil {
			return err
		}
	}
	set, err := fonts.Open(dir)
	if err != nil {
		return err
	}
	log.Info("textfxd: fonts loaded", "dir", set.Dir(), "count", len(set.List()))

	r := textfx.NewRenderer(textfx.WithFontSet(set))
	srv := server.New(r, server.Config{
		Addr:    addr,
		MaxBody: maxBody,
		Logger:  log,
	})
	return srv.ListenAndServe(ctx)
}

func defaultAddr() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	return ":" + port
}

// newLogger writes text to a terminal and JSON otherwise.
func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("textfxd: bad -log-level %q", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
}
