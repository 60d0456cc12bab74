// Package content loads a static-site content tree into searchable corpora.
//
// Posts are markdown files with YAML ("---") or TOML ("+++") front matter.
// Localized variants use Hugo-style filename suffixes (post.fr.md); files
// without a recognized suffix belong to the default language. The loader
// runs once at startup and produces one ordered corpus per locale.
package content

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/hollowbrook/sitesearch/internal/domain"
	"github.com/hollowbrook/sitesearch/internal/domain/document"
)

// summaryWordLimit caps derived summaries, matching the usual static-site
// convention.
const summaryWordLimit = 70

// frontMatter is the subset of page metadata the search corpus needs.
type frontMatter struct {
	Title       string `yaml:"title" toml:"title"`
	Slug        string `yaml:"slug" toml:"slug"`
	URL         string `yaml:"url" toml:"url"`
	Summary     string `yaml:"summary" toml:"summary"`
	Description string `yaml:"description" toml:"description"`
	Draft       bool   `yaml:"draft" toml:"draft"`
}

// Loader builds per-locale document corpora from a content directory.
type Loader struct {
	fsys        fs.FS
	baseURL     string
	defaultLang string
	languages   map[string]bool
	logger      *zap.Logger
}

// NewLoader creates a loader over the given content filesystem. languages
// lists the locale codes recognized as filename suffixes.
func NewLoader(fsys fs.FS, baseURL, defaultLang string, languages []string, logger *zap.Logger) *Loader {
	known := make(map[string]bool, len(languages))
	for _, l := range languages {
		known[l] = true
	}
	known[defaultLang] = true

	return &Loader{
		fsys:        fsys,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		defaultLang: defaultLang,
		languages:   known,
		logger:      logger,
	}
}

// Load walks the content tree and returns one ordered corpus per locale.
// Draft pages are skipped. A malformed file fails the whole load; content
// errors belong at startup, not at query time.
func (l *Loader) Load(ctx context.Context) (map[string][]document.Document, error) {
	corpora := make(map[string][]document.Document)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		doc, locale, draft, perr := l.loadFile(p)
		if perr != nil {
			return perr
		}
		if draft {
			l.logger.Debug("skipping draft", zap.String("path", p))
			return nil
		}
		corpora[locale] = append(corpora[locale], doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	for locale, docs := range corpora {
		l.logger.Info("content loaded",
			zap.String("locale", locale),
			zap.Int("documents", len(docs)),
		)
	}
	return corpora, nil
}

func (l *Loader) loadFile(p string) (document.Document, string, bool, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return document.Document{}, "", false, fmt.Errorf("read %s: %w", p, err)
	}

	fm, body, err := splitFrontMatter(data)
	if err != nil {
		return document.Document{}, "", false, fmt.Errorf("%w: %s: %v", domain.ErrInvalidContent, p, err)
	}

	locale, stem := splitLocale(p, l.defaultLang, l.languages)

	title := fm.Title
	if title == "" {
		title = humanize(path.Base(stem))
	}

	summary := fm.Summary
	if summary == "" {
		summary = fm.Description
	}
	plain := plainText(body)
	if summary == "" {
		summary = firstWords(plain, summaryWordLimit)
	}

	fields := map[string]string{
		"title":     title,
		"permalink": l.permalink(fm, locale, stem),
		"summary":   summary,
		"content":   plain,
	}

	doc, err := document.New(stem+"."+locale, fields)
	if err != nil {
		return document.Document{}, "", false, fmt.Errorf("%s: %w", p, err)
	}
	return doc, locale, fm.Draft, nil
}

// permalink builds the page URL: an explicit front-matter url wins,
// otherwise baseURL + language prefix (omitted for the default language) +
// section path + slug.
func (l *Loader) permalink(fm frontMatter, locale, stem string) string {
	if fm.URL != "" {
		return l.baseURL + "/" + strings.Trim(fm.URL, "/") + "/"
	}

	slug := fm.Slug
	if slug == "" {
		slug = path.Base(stem)
	}

	parts := make([]string, 0, 3)
	if locale != l.defaultLang {
		parts = append(parts, locale)
	}
	if dir := path.Dir(stem); dir != "." {
		parts = append(parts, dir)
	}
	parts = append(parts, slug)

	return l.baseURL + "/" + strings.Join(parts, "/") + "/"
}

// splitLocale derives the locale from a filename suffix (post.fr.md) when
// the suffix names a known language, and returns the path stem without
// extension or locale suffix.
func splitLocale(p, defaultLang string, known map[string]bool) (locale, stem string) {
	stem = strings.TrimSuffix(p, filepath.Ext(p))
	if ext := path.Ext(stem); ext != "" {
		if code := ext[1:]; known[code] {
			return code, strings.TrimSuffix(stem, ext)
		}
	}
	return defaultLang, stem
}

// splitFrontMatter separates the metadata block from the markdown body.
// A file without a front-matter delimiter is all body.
func splitFrontMatter(data []byte) (frontMatter, string, error) {
	var fm frontMatter
	s := string(data)

	var delim string
	var unmarshal func([]byte, any) error
	switch {
	case strings.HasPrefix(s, "---\n"):
		delim, unmarshal = "---", yaml.Unmarshal
	case strings.HasPrefix(s, "+++\n"):
		delim, unmarshal = "+++", toml.Unmarshal
	default:
		return fm, s, nil
	}

	rest := s[len(delim)+1:]
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return fm, "", fmt.Errorf("unterminated front matter")
	}
	block := rest[:end]
	body := strings.TrimPrefix(rest[end+1+len(delim):], "\n")

	if err := unmarshal([]byte(block), &fm); err != nil {
		return fm, "", err
	}
	return fm, body, nil
}

// humanize turns a file stem into a fallback title: "going-serverless"
// becomes "Going serverless".
func humanize(stem string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// firstWords returns at most n leading words of s.
func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ")
}
