// Package mavcodec is the public facade over the MAVLink v1/v2 codec: load
// a dialect, get back a Catalog-backed Codec that can scan/decode frames
// from a byte stream and serialize frames back to bytes.
package mavcodec

import (
	"log/slog"
	"sync"

	"github.com/mavbridge/mavcodec/dialect"
	"github.com/mavbridge/mavcodec/frame"
	"github.com/mavbridge/mavcodec/schema"
)

/*
Codec owns one schema.Catalog at a time, built by Initialize from a root
dialect name via the configured Resolver. Per the concurrency model,
re-running Initialize replaces the catalog; doing so concurrently with an
in-flight ParseDiscrete/Parse/Serialize is undefined behavior, same as the
teacher's process-wide state convention for a hot-swappable config object.
Once Initialize returns, ParseDiscrete/Parse/Serialize/Messages/Enums are
safe to call from many goroutines.
*/

////////////////////////////////////////////////////////////////////////////////

// Option configures a Codec at construction time.
type Option func(*Codec)

// WithResolver overrides the default filesystem dialect resolver.
func WithResolver(r dialect.Resolver) Option {
	return func(c *Codec) { c.resolver = r }
}

// WithLogger overrides the default slog.Default() logger. Reserved for
// future use by components that log; the codec hot path itself never logs.
func WithLogger(l *slog.Logger) Option {
	return func(c *Codec) { c.logger = l }
}

// WithStrict, when true, asks the dialect loader to fail on unknown XML
// attributes/elements instead of silently ignoring them (default false,
// per spec §6's "unknown attributes are ignored").
func WithStrict(strict bool) Option {
	return func(c *Codec) { c.strict = strict }
}

// Codec is the public entry point: construct with New, load a dialect with
// Initialize, then ParseDiscrete/Parse/Serialize frames against it.
type Codec struct {
	resolver dialect.Resolver
	logger   *slog.Logger
	strict   bool

	mu      sync.RWMutex
	catalog *schema.Catalog
	scanner *frame.Scanner
}

// New constructs a Codec. It is not usable until Initialize succeeds.
func New(opts ...Option) *Codec {
	c := &Codec{logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize loads rootDialectName via the configured resolver (or
// DefaultResolver(dir) when no resolver was set), compiles it, and applies
// messageIDs as the initial inclusion set (nil/empty means "all"; HEARTBEAT
// stays included either way). It replaces any previously loaded catalog.
func (c *Codec) Initialize(dir, rootDialectName string, messageIDs []uint32) error {
	resolver := c.resolver
	if resolver == nil {
		resolver = dialect.DefaultResolver(dir)
	}
	bundle, err := dialect.Load(resolver, rootDialectName, c.strict)
	if err != nil {
		return err
	}
	catalog, err := schema.Compile(bundle)
	if err != nil {
		return err
	}
	if len(messageIDs) > 0 {
		if err := catalog.IncludeMessages(messageIDs); err != nil {
			return err
		}
		listed := make(map[uint32]bool, len(messageIDs))
		for _, id := range messageIDs {
			listed[id] = true
		}
		var others []uint32
		for _, m := range catalog.Messages() {
			if !listed[m.ID] {
				others = append(others, m.ID)
			}
		}
		if err := catalog.ExcludeMessages(others); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.catalog = catalog
	c.scanner = frame.NewScanner(catalog)
	c.mu.Unlock()
	return nil
}

// IncludeMessages delegates to the active Catalog.
func (c *Codec) IncludeMessages(ids []uint32) error {
	cat, err := c.activeCatalog()
	if err != nil {
		return err
	}
	return cat.IncludeMessages(ids)
}

// ExcludeMessages delegates to the active Catalog.
func (c *Codec) ExcludeMessages(ids []uint32) error {
	cat, err := c.activeCatalog()
	if err != nil {
		return err
	}
	return cat.ExcludeMessages(ids)
}

// Messages returns every compiled message schema.
func (c *Codec) Messages() ([]*schema.MessageSchema, error) {
	cat, err := c.activeCatalog()
	if err != nil {
		return nil, err
	}
	return cat.Messages(), nil
}

// Enums returns every compiled enum schema.
func (c *Codec) Enums() ([]*schema.EnumSchema, error) {
	cat, err := c.activeCatalog()
	if err != nil {
		return nil, err
	}
	return cat.Enums(), nil
}

// ParseDiscrete decodes one frame from buf. See frame.Scanner.ParseDiscrete.
func (c *Codec) ParseDiscrete(buf []byte) (*frame.Frame, int, error) {
	c.mu.RLock()
	scanner := c.scanner
	c.mu.RUnlock()
	if scanner == nil {
		return nil, 0, NotInitialized{}
	}
	return scanner.ParseDiscrete(buf)
}

// Parse implements the streaming consumed/examined contract. See
// frame.Scanner.Parse.
func (c *Codec) Parse(buf []byte) (f *frame.Frame, consumed int, examined int, err error) {
	c.mu.RLock()
	scanner := c.scanner
	c.mu.RUnlock()
	if scanner == nil {
		return nil, 0, 0, NotInitialized{}
	}
	return scanner.Parse(buf)
}

// Serialize encodes a frame for messageID against the active catalog.
func (c *Codec) Serialize(messageID uint32, hdr frame.Header, values map[string]any) ([]byte, error) {
	cat, err := c.activeCatalog()
	if err != nil {
		return nil, err
	}
	msg, ok := cat.Message(messageID)
	if !ok {
		return nil, frame.MessageNotFound{MessageID: messageID}
	}
	return frame.Serialize(msg, hdr, values)
}

func (c *Codec) activeCatalog() (*schema.Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.catalog == nil {
		return nil, NotInitialized{}
	}
	return c.catalog, nil
}
