package delegate

import (
	"github.com/hiveworks/swarmrouter/internal/catalog"
	"github.com/hiveworks/swarmrouter/pkg/models"
)

// DefaultMaxTokens is the token budget used when a request leaves it unset.
const DefaultMaxTokens = 10000

// Option configures a Delegator. Use With* functions to create Options.
type Option func(*delegatorOptions)

// delegatorOptions holds all optional configuration.
type delegatorOptions struct {
	catalog          *catalog.Catalog
	capacity         int
	defaultMaxTokens int
	defaultPriority  models.TaskPriority
	logger           *DebugLogger
	emitter          *EventEmitter
}

// WithCatalog sets the dance catalog. Defaults to the built-in table.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *delegatorOptions) { o.catalog = c }
}

// WithCapacity bounds the ledger size. 0 (the default) means unbounded.
func WithCapacity(n int) Option {
	return func(o *delegatorOptions) { o.capacity = n }
}

// WithDefaultMaxTokens sets the budget used when a request omits max_tokens.
func WithDefaultMaxTokens(n int) Option {
	return func(o *delegatorOptions) { o.defaultMaxTokens = n }
}

// WithDefaultPriority sets the priority used when a request omits it.
// Invalid values fall back to medium.
func WithDefaultPriority(p models.TaskPriority) Option {
	return func(o *delegatorOptions) { o.defaultPriority = p }
}

// WithLogger sets the debug logger.
func WithLogger(l *DebugLogger) Option {
	return func(o *delegatorOptions) { o.logger = l }
}

// WithEmitter sets the event emitter for lifecycle events.
func WithEmitter(e *EventEmitter) Option {
	return func(o *delegatorOptions) { o.emitter = e }
}
