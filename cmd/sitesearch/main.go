package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hollowbrook/sitesearch/internal/config"
	"github.com/hollowbrook/sitesearch/internal/content"
	"github.com/hollowbrook/sitesearch/internal/domain/index"
	searchuc "github.com/hollowbrook/sitesearch/internal/usecase/search"
)

func main() {
	var root = &cobra.Command{Use: "sitesearch"}

	root.AddCommand(serveCMD(), queryCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildEngines loads the content tree and builds one search engine per
// configured locale. Locales without content get an empty index.
func buildEngines(
	ctx context.Context, cfg config.Config, logger *zap.Logger,
) (map[string]*searchuc.Service, error) {
	loader := content.NewLoader(
		os.DirFS(cfg.ContentDir),
		cfg.BaseURL,
		cfg.DefaultLanguage,
		cfg.Locales(),
		logger,
	)

	corpora, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.ContentDir, err)
	}

	engines := make(map[string]*searchuc.Service, len(cfg.Locales()))
	for _, locale := range cfg.Locales() {
		opts, err := cfg.ResolveSearch(locale)
		if err != nil {
			return nil, fmt.Errorf("resolve search options for %s: %w", locale, err)
		}

		idx, err := index.Build(corpora[locale], opts)
		if err != nil {
			return nil, fmt.Errorf("build index for %s: %w", locale, err)
		}

		engines[locale] = searchuc.New(idx.WithLocale(locale))
		logger.Info("index built",
			zap.String("locale", locale),
			zap.Int("documents", idx.Len()),
		)
	}
	return engines, nil
}
