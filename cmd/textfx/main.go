// Command textfx renders a JSON render request to a PNG file.
//
// Usage:
//
//	textfx [-fonts dir] [-o out.png] [request.json]
//
// The request is read from standard input when no file is given. It has the
// same shape as the body of POST /render.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/textfx"
	"github.com/gogpu/textfx/fonts"
)

func main() {
	var (
		fontDir = flag.String("fonts", "fonts", "font directory")
		output  = flag.String("o", "out.png", "output file")
		verbose = flag.Bool("v", false, "log pipeline steps to stderr")
	)
	flag.Parse()

	if *verbose {
		textfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	req, err := textfx.DecodeRequest(in)
	if err != nil {
		log.Fatalf("decode request: %v", err)
	}

	var opts []textfx.RendererOption
	if set, err := fonts.Open(*fontDir); err == nil {
		opts = append(opts, textfx.WithFontSet(set))
	} else {
		log.Printf("fonts: %v; using the built-in font", err)
	}

	png, err := textfx.NewRenderer(opts...).RenderRequest(context.Background(), req)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	if err := os.WriteFile(*output, png, 0o644); err != nil {
		log.Fatal(err)
	}
	log.Printf("rendered %d objects to %s (%dx%d)", len(req.Texts), *output, req.Width, req.Height)
}
