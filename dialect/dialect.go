// Package dialect parses MAVLink dialect XML documents (including their
// recursive <include> graph) into a raw, uncompiled bundle. It performs no
// field-layout or CRC_EXTRA derivation — that is schema.Compile's job.
package dialect

import (
	"context"
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/mavbridge/mavcodec/internal/log"
)

/*
A dialect file resolves to bytes through a caller-supplied Resolver, so the
loader has no opinion on where dialects live: on disk next to the binary
(DefaultResolver), embedded via go:embed, or held in memory for tests.
Recursive includes are followed eagerly and keyed by file name in Bundle so a
diamond or cyclic include graph is only ever parsed once per file.
*/

////////////////////////////////////////////////////////////////////////////////

// Resolver looks up the XML bytes for a dialect by file name.
type Resolver func(name string) ([]byte, error)

// DefaultResolver returns a Resolver that reads dialect files out of dir,
// mirroring the convention of a "Dialects" directory shipped next to the
// consuming binary.
func DefaultResolver(dir string) Resolver {
	return func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		return data, nil
	}
}

// Bundle is the raw, uncompiled result of loading a root dialect and every
// dialect it transitively includes, keyed by file name.
type Bundle struct {
	Root     string
	Dialects map[string]*Raw
}

// Load reads rootName via resolver and recursively resolves every <include>
// it (and its includes) names, returning the full raw bundle. When strict is
// true, any element or attribute outside the xml_schema.html vocabulary
// fails the load instead of being silently ignored.
func Load(resolver Resolver, rootName string, strict bool) (*Bundle, error) {
	ctx := log.AddTags(context.Background(), "root", rootName)
	log.Infof(ctx, "loading dialect bundle")
	bundle := &Bundle{Root: rootName, Dialects: map[string]*Raw{}}
	if err := loadOne(ctx, resolver, rootName, bundle, strict); err != nil {
		log.Errorf(ctx, "loading dialect bundle: %v", err)
		return nil, err
	}
	log.Infof(ctx, "loaded %d dialect file(s)", len(bundle.Dialects))
	return bundle, nil
}

func loadOne(ctx context.Context, resolver Resolver, name string, bundle *Bundle, strict bool) error {
	if _, loaded := bundle.Dialects[name]; loaded {
		return nil
	}
	ctx = log.AddTags(ctx, "dialect", name)
	log.Debugf(ctx, "resolving dialect file")
	data, err := resolver(name)
	if err != nil {
		return DialectNotFound{Name: name, Err: err}
	}
	if strict {
		if err := validateKnown(data); err != nil {
			return DialectParseError{Name: name, Err: err}
		}
	}
	raw := &Raw{}
	if err := xml.Unmarshal(data, raw); err != nil {
		return DialectParseError{Name: name, Err: err}
	}
	// Mark the dialect as loaded before recursing into its includes so a
	// cycle back to an ancestor is a no-op rather than infinite recursion.
	bundle.Dialects[name] = raw
	for _, include := range raw.Includes {
		if err := loadOne(ctx, resolver, include, bundle, strict); err != nil {
			return err
		}
	}
	return nil
}
