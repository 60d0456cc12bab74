package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hollowbrook/sitesearch/internal/config"
	"github.com/hollowbrook/sitesearch/internal/domain"
)

func queryCMD() *cobra.Command {
	var cfgPath string
	var lang string
	var asJSON bool
	var query = &cobra.Command{
		Use:   "query [terms...]",
		Short: "Run a one-shot search against the content directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cfgPath, lang, strings.Join(args, " "), asJSON)
		},
	}
	query.Flags().StringVarP(&cfgPath, "config", "c", "config.yaml", "config file")
	query.Flags().StringVarP(&lang, "lang", "l", "", "locale to search (default: site default language)")
	query.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return query
}

type queryResult struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Permalink     string   `json:"permalink"`
	Score         float64  `json:"score"`
	MatchedFields []string `json:"matched_fields"`
}

func runQuery(cfgPath, lang, query string, asJSON bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lang == "" {
		lang = cfg.DefaultLanguage
	}

	engines, err := buildEngines(context.Background(), cfg, zap.NewNop())
	if err != nil {
		return err
	}

	engine, ok := engines[lang]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownLocale, lang)
	}

	matches, err := engine.Search(context.Background(), query)
	if err != nil {
		return err
	}

	idx := engine.Index()
	results := make([]queryResult, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		res := queryResult{
			ID:            m.ID(),
			Score:         m.Score(),
			MatchedFields: m.MatchedFields(),
		}
		if doc, ok := idx.Lookup(m.ID()); ok {
			res.Title, _ = doc.Original("title")
			res.Permalink, _ = doc.Original("permalink")
		}
		results = append(results, res)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, res := range results {
		fmt.Printf("%.4f  %-40s  %s\n", res.Score, res.Title, res.Permalink)
	}
	return nil
}
