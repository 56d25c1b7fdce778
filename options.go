package dealersearch

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	contentProjectID  string
	contentDataset    string
	contentAPIVersion string
	contentToken      string

	catalogDomain     string
	catalogToken      string
	catalogAPIVersion string

	cacheBackend  string // "memory" or "redis"
	redisAddrs    []string
	redisPassword string
	keyPrefix     string

	indexTTL   time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// WithContent configures the vehicle content source (Sanity project and
// dataset). Required.
func WithContent(projectID, dataset string) Option {
	return optionFunc(func(c *clientConfig) {
		c.contentProjectID = projectID
		c.contentDataset = dataset
	})
}

// WithContentToken sets the content source API token. Only needed for
// private datasets.
func WithContentToken(token string) Option {
	return optionFunc(func(c *clientConfig) {
		c.contentToken = token
	})
}

// WithContentAPIVersion overrides the content API version date.
func WithContentAPIVersion(version string) Option {
	return optionFunc(func(c *clientConfig) {
		c.contentAPIVersion = version
	})
}

// WithCatalog configures the parts catalog source (Shopify store domain and
// Storefront access token). Required.
func WithCatalog(storeDomain, storefrontToken string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogDomain = storeDomain
		c.catalogToken = storefrontToken
	})
}

// WithCatalogAPIVersion overrides the catalog API version.
func WithCatalogAPIVersion(version string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogAPIVersion = version
	})
}

// WithRedis stores indexes, search results and recommendations in Redis
// instead of the default in-process cache. Use when several instances
// should share one cache.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheBackend = "redis"
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithKeyPrefix sets the cache key prefix for the Redis backend.
// Defaults to "dealersearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithIndexTTL bounds search index staleness. Defaults to five minutes.
func WithIndexTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexTTL = ttl
	})
}

// WithHTTPClient sets the HTTP client used for upstream calls.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = log
	})
}
