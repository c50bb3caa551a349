// Package repository discovers decision documents on disk and loads them
// into an id-keyed collection ready for validation.
package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/c360studio/archgov/adr"
	"github.com/c360studio/archgov/frontmatter"
	"github.com/c360studio/archgov/mdtree"
	"github.com/c360studio/archgov/relations"
)

// DefaultPattern matches decision files anywhere under the root.
const DefaultPattern = "**/ADR-*.md"

// DefaultCacheSize is the number of parsed files kept between loads.
const DefaultCacheSize = 1024

var (
	// ErrRootNotFound is returned when the document root does not exist.
	ErrRootNotFound = errors.New("document root not found")

	// ErrNoDocuments is returned by Collection.Require for an empty load.
	ErrNoDocuments = errors.New("no governed documents found")
)

// Options configures a Loader.
type Options struct {
	// Root is the directory searched for documents.
	Root string

	// Pattern is a doublestar glob relative to Root.
	Pattern string

	// ExcludeDirs lists directory names skipped anywhere in the tree, in
	// addition to .git, node_modules and other dot-directories.
	ExcludeDirs []string

	// CacheSize bounds the parse cache. Zero uses DefaultCacheSize.
	CacheSize int

	// Labels overrides the relationship vocabulary.
	Labels *relations.Labels
}

// DefaultOptions returns options for root with the default pattern.
func DefaultOptions(root string) Options {
	return Options{
		Root:        root,
		Pattern:     DefaultPattern,
		ExcludeDirs: []string{".git", "node_modules"},
		CacheSize:   DefaultCacheSize,
	}
}

// parsed is the cached result of reading one file.
type parsed struct {
	frontMatter frontmatter.Data
	relations   adr.Relations
	hasSection  bool
}

// Loader reads decision documents from a directory tree.
// A Loader is safe for sequential reuse; the cache makes repeated loads
// of unchanged files cheap.
type Loader struct {
	opts      Options
	extractor *relations.Extractor
	cache     *lru.Cache[string, parsed]
	excludes  map[string]bool
	logger    *slog.Logger
}

// NewLoader creates a loader.
func NewLoader(opts Options, logger *slog.Logger) (*Loader, error) {
	if strings.TrimSpace(opts.Root) == "" {
		return nil, fmt.Errorf("document root is required")
	}
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("invalid document pattern %q", opts.Pattern)
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	cache, err := lru.New[string, parsed](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create parse cache: %w", err)
	}

	extractor := relations.DefaultExtractor()
	if opts.Labels != nil {
		extractor = relations.NewExtractor(*opts.Labels)
	}

	return &Loader{
		opts:      opts,
		extractor: extractor,
		cache:     cache,
		excludes:  excludeSet(opts.ExcludeDirs),
		logger:    logger,
	}, nil
}

// Root returns the document root.
func (l *Loader) Root() string { return l.opts.Root }

// Pattern returns the document glob.
func (l *Loader) Pattern() string { return l.opts.Pattern }

// Discover returns candidate file paths under the root in lexical order.
// README.md, files under proposals directories and files under excluded
// directories are skipped.
func (l *Loader) Discover() ([]string, error) {
	info, err := os.Stat(l.opts.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, l.opts.Root)
	}

	matches, err := doublestar.Glob(os.DirFS(l.opts.Root), l.opts.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", l.opts.Pattern, err)
	}

	var paths []string
	for _, rel := range matches {
		if l.skip(rel) {
			continue
		}
		paths = append(paths, filepath.Join(l.opts.Root, filepath.FromSlash(rel)))
	}
	slices.Sort(paths)
	return paths, nil
}

// defaultExcludes are always skipped, whatever ExcludeDirs adds.
var defaultExcludes = []string{".git", "node_modules"}

func excludeSet(extra []string) map[string]bool {
	set := make(map[string]bool, len(defaultExcludes)+len(extra))
	for _, dir := range defaultExcludes {
		set[dir] = true
	}
	for _, dir := range extra {
		set[dir] = true
	}
	return set
}

// excluded reports whether a directory name is skipped. Dot-directories
// are always skipped.
func excluded(set map[string]bool, name string) bool {
	return set[name] || strings.HasPrefix(name, ".")
}

// skip reports whether a slash-separated relative path is excluded.
func (l *Loader) skip(rel string) bool {
	segments := strings.Split(rel, "/")
	if strings.EqualFold(segments[len(segments)-1], "README.md") {
		return true
	}
	for _, dir := range segments[:len(segments)-1] {
		if dir == "proposals" || excluded(l.excludes, dir) {
			return true
		}
	}
	return false
}

// LoadAll loads the governed documents under the root.
func (l *Loader) LoadAll(ctx context.Context) (*Collection, error) {
	return l.load(ctx, true)
}

// LoadAllFiles loads every candidate file, governed or not. Use
// Document.IsAdr to tell them apart.
func (l *Loader) LoadAllFiles(ctx context.Context) (*Collection, error) {
	return l.load(ctx, false)
}

func (l *Loader) load(ctx context.Context, governedOnly bool) (*Collection, error) {
	start := time.Now()

	paths, err := l.Discover()
	if err != nil {
		return nil, err
	}

	c := newCollection(l.opts.Root)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, hasSection, err := l.LoadFile(path)
		if err != nil {
			l.logger.Warn("Skipping unreadable document", "path", path, "error", err)
			c.skipped = append(c.skipped, path)
			continue
		}
		if doc == nil {
			continue
		}
		if governedOnly && !doc.IsAdr {
			l.logger.Debug("Skipping non-governed document", "path", path, "id", doc.ID)
			continue
		}

		if !c.add(doc) {
			l.logger.Warn("Duplicate document id, keeping first",
				"id", doc.ID,
				"path", path,
				"kept", c.byID[doc.ID].FilePath)
			continue
		}
		if doc.IsAdr && !hasSection {
			c.missingSection = append(c.missingSection, doc.ID)
		}
	}

	l.logger.Debug("Documents loaded",
		"root", l.opts.Root,
		"documents", c.Len(),
		"candidates", len(paths),
		"governed_only", governedOnly,
		"duration", time.Since(start))

	return c, nil
}

// LoadFile parses one file. It returns a nil document when the file name
// carries no ADR id. hasSection reports whether a relationships heading
// was found.
func (l *Loader) LoadFile(path string) (doc *adr.Document, hasSection bool, err error) {
	id := adr.IDFromFilename(filepath.Base(path))
	if id == "" {
		return nil, false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("stat %s: %w", path, err)
	}

	key := cacheKey(path, info)
	p, ok := l.cache.Get(key)
	if !ok {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, false, fmt.Errorf("read %s: %w", path, err)
		}
		p = l.parse(content)
		l.cache.Add(key, p)
	}

	fm := p.frontMatter
	doc = adr.NewDocument(id, path)
	doc.Relations = p.relations.Clone()
	doc.Status = fm.Status
	doc.Level = fm.Level
	doc.Type = fm.Type
	doc.HasFrontMatter = fm.HasFrontMatter
	doc.IsAdr = adr.IsGovernedDocument(path, &fm)
	return doc, p.hasSection, nil
}

func (l *Loader) parse(content []byte) parsed {
	text := string(content)
	tree := mdtree.Parse([]byte(frontmatter.Body(text)))
	return parsed{
		frontMatter: frontmatter.Extract(text),
		relations:   l.extractor.Extract(tree),
		hasSection:  l.extractor.HasSection(tree),
	}
}

// CacheLen returns the number of cached parses.
func (l *Loader) CacheLen() int {
	return l.cache.Len()
}

// Invalidate drops cached parses of path.
func (l *Loader) Invalidate(path string) {
	prefix := path + "@"
	for _, key := range l.cache.Keys() {
		if strings.HasPrefix(key, prefix) {
			l.cache.Remove(key)
		}
	}
}

// cacheKey changes whenever the file is rewritten.
func cacheKey(path string, info fs.FileInfo) string {
	return fmt.Sprintf("%s@%d:%d", path, info.ModTime().UnixNano(), info.Size())
}
