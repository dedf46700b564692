package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/aretw0/powerset/pkg/schema"
)

// Catalog adapts a Loam repository to ports.Catalog.
// Each document is one automaton, named by its "name" frontmatter key or its file name.
type Catalog struct {
	Repo   *loam.TypedRepository[AutomatonMetadata]
	parser *parser.Parser
}

// New creates a new Loam catalog.
func New(repo *loam.TypedRepository[AutomatonMetadata]) *Catalog {
	return &Catalog{
		Repo:   repo,
		parser: parser.New(),
	}
}

// Open initializes a read-only Loam repository at path and wraps it in a Catalog.
// The catalog never modifies the documents, only reads them.
func Open(path string) (*Catalog, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[AutomatonMetadata](repo)), nil
}

type entry struct {
	docID   string
	meta    AutomatonMetadata
	content string
}

// index lists every document keyed by its normalized name.
func (c *Catalog) index(ctx context.Context) (map[string]entry, error) {
	docs, err := c.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	out := make(map[string]entry, len(docs))
	for _, doc := range docs {
		// Use the name from metadata if available, otherwise filename ID
		rawName := doc.Data.Name
		if rawName == "" {
			rawName = doc.ID
		}
		name := trimExtension(rawName)

		// Collision Detection
		if existing, ok := out[name]; ok {
			return nil, fmt.Errorf("collision detected: name '%s' is defined in both '%s' and '%s'", name, existing.docID, doc.ID)
		}
		out[name] = entry{docID: doc.ID, meta: doc.Data, content: doc.Content}
	}
	return out, nil
}

// List returns all automaton names, sorted.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	idx, err := c.index(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Get loads and parses the named automaton.
func (c *Catalog) Get(ctx context.Context, name string) (*schema.Definition, error) {
	idx, err := c.index(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := idx[trimExtension(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrDefinitionNotFound, name)
	}

	key := trimExtension(name)
	if strings.TrimSpace(e.content) == "" {
		return e.meta.definition(key), nil
	}

	def, err := c.parser.ParseBytes([]byte(e.content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", e.docID, err)
	}
	def.Name = key
	return def, nil
}

// Describe returns the frontmatter description of the named automaton.
func (c *Catalog) Describe(ctx context.Context, name string) (string, error) {
	idx, err := c.index(ctx)
	if err != nil {
		return "", err
	}
	e, ok := idx[trimExtension(name)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ports.ErrDefinitionNotFound, name)
	}
	return e.meta.Description, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
