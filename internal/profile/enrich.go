// Package profile builds business profiles (highlights, services) from a
// business website, for enriching review cards.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paresh/review-cards/internal/fetch"
	"github.com/paresh/review-cards/internal/llm"
	"github.com/paresh/review-cards/internal/prompts"
)

// maxCorpusLen caps how much page text is handed to the model.
const maxCorpusLen = 20000

// subPagePaths are the site sections most likely to describe the business.
// The empty path is the page the admin actually submitted.
var subPagePaths = []string{"", "/about", "/services"}

// BusinessProfile is the extracted result of an enrichment run.
type BusinessProfile struct {
	Highlights string   `json:"highlights"`
	Services   []string `json:"services"`
}

// Enricher fetches business pages and extracts a profile from their text.
type Enricher struct {
	client    llm.Client
	fetchOpts *fetch.Options
}

// NewEnricher creates an Enricher backed by the given generation client.
func NewEnricher(client llm.Client) *Enricher {
	return &Enricher{
		client:    client,
		fetchOpts: fetch.DefaultOptions(),
	}
}

// Enrich fetches the business site and extracts highlights and services.
// useBrowser forces headless rendering; otherwise it is used only when the
// plain fetch yields too little text to work with.
func (e *Enricher) Enrich(ctx context.Context, baseURL string, useBrowser bool) (*BusinessProfile, error) {
	corpus, err := e.collect(ctx, baseURL, useBrowser)
	if err != nil {
		return nil, err
	}
	if len(corpus) > maxCorpusLen {
		corpus = corpus[:maxCorpusLen]
	}

	prompt := prompts.Format(prompts.MustGet("enrich.json", "extract_profile"), map[string]string{
		"Content": corpus,
	})

	raw, err := e.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("profile extraction failed: %w", err)
	}

	var profile BusinessProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	if strings.TrimSpace(profile.Highlights) == "" && len(profile.Services) == 0 {
		return nil, fmt.Errorf("extraction produced an empty profile for %s", baseURL)
	}

	return &profile, nil
}

// collect gathers text from the submitted page and its common subpages.
// Subpage failures are tolerated; only losing the submitted page is fatal.
func (e *Enricher) collect(ctx context.Context, baseURL string, useBrowser bool) (string, error) {
	platform := fetch.DetectPlatform(baseURL)
	selectors := fetch.PlatformContentSelectors(platform)
	noise := fetch.PlatformNoiseSelectors(platform)

	texts := make([]string, len(subPagePaths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(subPagePaths))

	for i, path := range subPagePaths {
		g.Go(func() error {
			pageURL := strings.TrimSuffix(baseURL, "/") + path
			result, err := fetch.URL(gctx, pageURL, e.fetchOpts)
			if err != nil {
				if path == "" {
					return err
				}
				log.Printf("[profile] skipping %s: %v", pageURL, err)
				return nil
			}
			text, err := fetch.ExtractMainText(result.HTML, selectors, noise...)
			if err != nil {
				if path == "" {
					return err
				}
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to fetch business site: %w", err)
	}

	corpus := joinNonEmpty(texts)

	// JavaScript-heavy sites render nothing useful to a plain fetch.
	if useBrowser || fetch.ShouldUseBrowser(corpus) {
		html, err := fetch.WithBrowser(ctx, baseURL, 45*time.Second, false)
		if err != nil {
			if corpus == "" {
				return "", fmt.Errorf("browser rendering failed: %w", err)
			}
			log.Printf("[profile] browser rendering failed, using plain fetch: %v", err)
			return corpus, nil
		}
		rendered, err := fetch.ExtractMainText(html, selectors, noise...)
		if err == nil && len(rendered) > len(corpus) {
			return rendered, nil
		}
	}

	if corpus == "" {
		return "", fmt.Errorf("no usable text found at %s", baseURL)
	}
	return corpus, nil
}

func joinNonEmpty(parts []string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}
