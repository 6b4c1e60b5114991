package treesitter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/diffscope"
	sitter "github.com/smacker/go-tree-sitter"
)

// SourceAST owns a parsed syntax tree together with the exact source it was
// parsed from. Instances are immutable: the cache replaces an entry rather
// than mutating it when file content changes.
type SourceAST struct {
	Path     string
	Tree     *sitter.Tree
	Source   []byte
	Hash     uint64
	Language string
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits   int
	Misses int
}

// Cache parses source files into SourceAST values keyed by path, reusing a
// cached tree while the file's content hash is unchanged. Invalidation is
// driven purely by hash comparison; modification times are not consulted.
//
// Cache is safe for concurrent use: entries are guarded by a single mutex,
// so parses of distinct paths are serialized. That trade is fine at diff
// scale and rules out lost updates to the same path.
type Cache struct {
	root     string
	registry *Registry
	logger   *slog.Logger

	mu      sync.Mutex
	entries map[string]*SourceAST
	stats   CacheStats
}

// NewCache creates a cache resolving relative paths against root.
func NewCache(root string, registry *Registry, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		root:     root,
		registry: registry,
		logger:   logger,
		entries:  make(map[string]*SourceAST),
	}
}

// GetOrParse returns the syntax tree for the file at path, parsing it only
// when no cached tree matches the file's current content hash.
func (c *Cache) GetOrParse(ctx context.Context, path string) (*SourceAST, error) {
	abs := path
	if c.root != "" && !filepath.IsAbs(path) {
		abs = filepath.Join(c.root, path)
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &diffscope.FileNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	hash := xxhash.Sum64(content)

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.entries[path]; ok && cached.Hash == hash {
		c.stats.Hits++
		c.logger.Debug("syntax tree cache hit", "path", path)
		return cached, nil
	}
	c.stats.Misses++

	lang, err := c.registry.forPath(path)
	if err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang.Language())
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, &diffscope.ParseFailedError{Path: path, Reason: err.Error()}
	}
	if tree == nil {
		return nil, &diffscope.ParseFailedError{Path: path, Reason: "grammar produced no tree"}
	}

	ast := &SourceAST{
		Path:     path,
		Tree:     tree,
		Source:   content,
		Hash:     hash,
		Language: lang.ID(),
	}
	c.entries[path] = ast
	c.logger.Debug("parsed syntax tree", "path", path, "language", ast.Language)
	return ast, nil
}

// Stats returns a snapshot of hit/miss counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Clear drops every cached tree.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*SourceAST)
}
