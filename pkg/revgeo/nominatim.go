package revgeo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/pergazuz/thai-map/internal/resilience"
)

// DefaultNominatimURL is the public OSM Nominatim instance.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// nominatimResponse is the subset of the reverse geocode payload we read.
// Thai results usually carry the province in "state"; some instances use
// "province" or "county".
type nominatimResponse struct {
	Address struct {
		Province string `json:"province"`
		State    string `json:"state"`
		County   string `json:"county"`
	} `json:"address"`
	Error string `json:"error"`
}

// NominatimProvider reverse-geocodes one coordinate per request against a
// Nominatim instance, fanning out under a shared rate limit.
type NominatimProvider struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	limiter     *rate.Limiter
	concurrency int
}

// NominatimOption configures a NominatimProvider.
type NominatimOption func(*NominatimProvider)

// WithNominatimBaseURL points the provider at a different instance.
func WithNominatimBaseURL(baseURL string) NominatimOption {
	return func(p *NominatimProvider) {
		if baseURL != "" {
			p.baseURL = baseURL
		}
	}
}

// WithNominatimHTTPClient sets a custom HTTP client.
func WithNominatimHTTPClient(hc *http.Client) NominatimOption {
	return func(p *NominatimProvider) {
		if hc != nil {
			p.httpClient = hc
		}
	}
}

// WithNominatimUserAgent sets the User-Agent header. The public instance
// requires an identifying one.
func WithNominatimUserAgent(ua string) NominatimOption {
	return func(p *NominatimProvider) {
		p.userAgent = ua
	}
}

// WithNominatimRateLimit sets the requests-per-second limit.
func WithNominatimRateLimit(rps float64) NominatimOption {
	return func(p *NominatimProvider) {
		if rps > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithNominatimConcurrency sets the max parallel requests per batch.
func WithNominatimConcurrency(n int) NominatimOption {
	return func(p *NominatimProvider) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewNominatimProvider creates a provider with public-instance defaults:
// 1 req/s and two workers.
func NewNominatimProvider(opts ...NominatimOption) *NominatimProvider {
	p := &NominatimProvider{
		baseURL:     DefaultNominatimURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		userAgent:   "thai-map/1.0",
		limiter:     rate.NewLimiter(1, 1),
		concurrency: 2,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *NominatimProvider) Name() string { return "nominatim" }

// Available implements Provider.
func (p *NominatimProvider) Available() bool { return p.baseURL != "" }

// ResolveBatch implements Provider. A coordinate with no province in the
// response yields Unknown; a transport or server failure fails the whole
// batch so the chain can move on.
func (p *NominatimProvider) ResolveBatch(ctx context.Context, coords []Coord) ([]string, error) {
	out := make([]string, len(coords))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.concurrency)

	for i, coord := range coords {
		eg.Go(func() error {
			province, err := p.reverse(gCtx, coord)
			if err != nil {
				return err
			}
			if province == "" {
				province = Unknown
			}
			out[i] = province
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, eris.Wrap(err, "revgeo: nominatim batch")
	}
	return out, nil
}

// reverse performs one reverse geocode call. An empty province with a nil
// error means the location resolved to nothing usable.
func (p *NominatimProvider) reverse(ctx context.Context, c Coord) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "revgeo: nominatim rate limit")
	}

	params := url.Values{
		"format":          {"jsonv2"},
		"lat":             {strconv.FormatFloat(c.Lat, 'f', -1, 64)},
		"lon":             {strconv.FormatFloat(c.Lng, 'f', -1, 64)},
		"zoom":            {"8"},
		"accept-language": {"en"},
	}

	reqURL := p.baseURL + "/reverse?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "revgeo: nominatim build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "revgeo: nominatim request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		statusErr := eris.Errorf("revgeo: nominatim returned status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return "", resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return "", statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "revgeo: nominatim read body")
	}

	var nr nominatimResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return "", eris.Wrap(err, "revgeo: nominatim parse response")
	}

	// "Unable to geocode" arrives as an error field with status 200.
	if nr.Error != "" {
		return "", nil
	}
	for _, cand := range []string{nr.Address.Province, nr.Address.State, nr.Address.County} {
		if cand != "" {
			return cand, nil
		}
	}
	return "", nil
}
