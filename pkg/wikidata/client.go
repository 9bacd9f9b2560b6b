// Package wikidata provides a client for the Wikidata SPARQL endpoint used
// to fetch biographical facts about artists.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the public Wikidata query service.
const DefaultEndpoint = "https://query.wikidata.org/sparql"

// Client defines the Wikidata lookup operations.
type Client interface {
	// ArtistFacts queries biographical facts for the given artist names,
	// batching and shrinking requests to stay under endpoint limits.
	ArtistFacts(ctx context.Context, names []string) ([]ArtistFact, error)
}

// ArtistFact is one result binding from the SPARQL query. An artist with
// several awards produces several facts.
type ArtistFact struct {
	Artist  string
	Country string
	Award   string
	Death   string
	Gender  string
}

// sparqlResponse mirrors the application/sparql-results+json envelope.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]sparqlValue `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Value string `json:"value"`
}

// Option configures the Wikidata client.
type Option func(*httpClient)

// WithEndpoint sets a custom SPARQL endpoint URL (for testing).
func WithEndpoint(endpoint string) Option {
	return func(c *httpClient) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header. Wikidata requires a descriptive
// agent with contact information.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithBatchSize sets the initial number of names per query.
func WithBatchSize(n int) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithMaxQueryBytes caps the encoded query size; oversized batches are
// shrunk until they fit.
func WithMaxQueryBytes(n int) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.maxQueryBytes = n
		}
	}
}

// WithLimiter sets the request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	endpoint      string
	userAgent     string
	batchSize     int
	maxQueryBytes int
	http          *http.Client
	limiter       *rate.Limiter
}

// NewClient creates a new Wikidata SPARQL client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		endpoint:      DefaultEndpoint,
		userAgent:     "music-etl/1.0 (https://github.com/chordline/music-etl)",
		batchSize:     80,
		maxQueryBytes: 60000,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(1.2), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CleanName normalizes a raw artist name for use in a SPARQL VALUES clause:
// quote characters are stripped so the name can be embedded as a literal,
// slashes become spaces and ampersands become "and" to match label spelling.
// Returns "" for names that are empty after cleaning.
func CleanName(name string) string {
	r := strings.NewReplacer(`\`, "", `"`, "", `'`, "", "/", " ", "&", "and")
	return strings.TrimSpace(r.Replace(name))
}

// BuildQuery renders the SPARQL query for a batch of artist names. Labels
// are matched against English rdfs:label values; country, death date and
// gender are optional bindings.
func BuildQuery(names []string) string {
	var values strings.Builder
	for i, name := range names {
		if i > 0 {
			values.WriteByte('\n')
		}
		fmt.Fprintf(&values, "%q@en", name)
	}
	return fmt.Sprintf(`SELECT ?artistLabel ?death ?countryLabel ?awardLabel ?genderLabel WHERE {
  VALUES ?name { %s }
  ?artist rdfs:label ?name.
  ?artist wdt:P166 ?award.
  ?award rdfs:label ?awardLabel.
  OPTIONAL { ?artist wdt:P27 ?country. }
  OPTIONAL { ?artist wdt:P570 ?death. }
  OPTIONAL { ?artist wdt:P21 ?gender. }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "[AUTO_LANGUAGE],en". }
}`, values.String())
}

func (c *httpClient) ArtistFacts(ctx context.Context, names []string) ([]ArtistFact, error) {
	var facts []ArtistFact

	i := 0
	for i < len(names) {
		batchSize := c.batchSize
		advanced := false

		for batchSize > 0 {
			end := i + batchSize
			if end > len(names) {
				end = len(names)
			}
			batch := names[i:end]

			query := BuildQuery(batch)
			if len(query) > c.maxQueryBytes {
				// Trim a few names at a time until the query fits.
				batchSize -= 5
				continue
			}

			batchFacts, err := c.query(ctx, query)
			if err != nil {
				if ctx.Err() != nil {
					return facts, ctx.Err()
				}
				zap.L().Warn("wikidata: batch failed, halving",
					zap.Int("offset", i),
					zap.Int("batch_size", len(batch)),
					zap.Error(err))
				batchSize /= 2
				continue
			}

			facts = append(facts, batchFacts...)
			i = end
			advanced = true
			break
		}

		if !advanced {
			// A single name that still fails is unrecoverable; skip it.
			zap.L().Warn("wikidata: skipping artist", zap.String("name", names[i]))
			i++
		}
	}

	zap.L().Info("wikidata: artist facts fetched",
		zap.Int("names", len(names)),
		zap.Int("facts", len(facts)))
	return facts, nil
}

// query posts one SPARQL query and decodes the result bindings.
func (c *httpClient) query(ctx context.Context, query string) ([]ArtistFact, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "wikidata: create request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "wikidata: request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "wikidata: read response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("wikidata: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var parsed sparqlResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, eris.Wrap(err, "wikidata: unmarshal response")
	}

	facts := make([]ArtistFact, 0, len(parsed.Results.Bindings))
	for _, b := range parsed.Results.Bindings {
		fact := ArtistFact{
			Artist:  b["artistLabel"].Value,
			Country: b["countryLabel"].Value,
			Award:   b["awardLabel"].Value,
			Death:   b["death"].Value,
			Gender:  b["genderLabel"].Value,
		}
		if fact.Award == "" {
			fact.Award = "No awards"
		}
		if fact.Gender == "" {
			fact.Gender = "Unknown"
		}
		facts = append(facts, fact)
	}
	return facts, nil
}
