package fonts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
)

// Source names a font file and where to fetch it.
type Source struct {
	Name string
	URL  string
}

// DefaultSources is the Bengali font catalogue installed by default.
var DefaultSources = []Source{
	{"NotoSansBengali-Regular.ttf", "https://github.com/googlefonts/noto-fonts/raw/main/hinted/ttf/NotoSansBengali/NotoSansBengali-Regular.ttf"},
	{"NotoSansBengali-Bold.ttf", "https://github.com/googlefonts/noto-fonts/raw/main/hinted/ttf/NotoSansBengali/NotoSansBengali-Bold.ttf"},
	{"MuktaBangla-Regular.ttf", "https://github.com/googlefonts/mukta-fonts/raw/master/fonts/ttf/MuktaBangla-Regular.ttf"},
	{"MuktaBangla-Bold.ttf", "https://github.com/googlefonts/mukta-fonts/raw/master/fonts/ttf/MuktaBangla-Bold.ttf"},
	{"MuktaBangla-ExtraBold.ttf", "https://github.com/googlefonts/mukta-fonts/raw/master/fonts/ttf/MuktaBangla-ExtraBold.ttf"},
	{"MuktaBangla-Light.ttf", "https://github.com/googlefonts/mukta-fonts/raw/master/fonts/ttf/MuktaBangla-Light.ttf"},
}

// ProvisionOption configures Provision.
type ProvisionOption func(*provisionConfig)

type provisionConfig struct {
	client      *http.Client
	parallelism int
}

func defaultProvisionConfig() provisionConfig {
	return provisionConfig{
		client:      &http.Client{Timeout: 60 * time.Second},
		parallelism: 3,
	}
}

// WithHTTPClient sets the client used for downloads.
func WithHTTPClient(c *http.Client) ProvisionOption {
	return func(cfg *provisionConfig) {
		if c != nil {
			cfg.client = c
		}
	}
}

// WithParallelism sets how many downloads run at once.
func WithParallelism(n int) ProvisionOption {
	return func(cfg *provisionConfig) {
		if n > 0 {
			cfg.parallelism = n
		}
	}
}

// Provision makes sure every source exists in dir, downloading the
// missing ones. Existing files are left alone. A failed download is
// logged and skipped; Provision only fails when dir cannot be created
// or ctx is done.
func Provision(ctx context.Context, dir string, sources []Source, opts ...ProvisionOption) error {
	cfg := defaultProvisionConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fonts: provision: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.parallelism)
	for _, src := range sources {
		if !validName(src.Name) {
			slogger().Warn("fonts: skipping source with invalid name", "name", src.Name)
			continue
		}
		path := filepath.Join(dir, src.Name)
		if _, err := os.Stat(path); err == nil {
			slogger().Debug("fonts: already present", "font", src.Name)
			continue
		}

		g.Go(func() error {
			if err := download(ctx, cfg.client, src.URL, path); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slogger().Warn("fonts: download failed", "font", src.Name, "url", src.URL, "err", err)
				return nil
			}
			slogger().Info("fonts: downloaded", "font", src.Name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("fonts: provision: %w", err)
	}
	return nil
}

var errBadStatus = errors.New("unexpected HTTP status")

// download fetches url into path through a temporary file in the same
// directory, so a partial download never appears under the final name.
func download(ctx context.Context, client *http.Client, url, path string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", errBadStatus, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
