package fkjoin

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/syssam/fkjoin/jointree"
)

// DefaultMaxDepth is the default limit on join-tree nesting. A query nested
// this deep is far beyond anything a planner produces; the limit exists to
// bound stack growth on adversarial input.
const DefaultMaxDepth = 512

// Option configures a verification call.
type Option func(*config)

type config struct {
	maxDepth int
	log      *zap.Logger
}

// WithMaxDepth overrides the join-tree nesting limit.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		c.maxDepth = n
	}
}

// WithLogger sets the logger used for debug tracing. The default discards
// everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// Verify checks the foreign-key join construct rooted at tree. trunk is the
// relation the query syntactically roots the construct at; cat supplies
// column nullability. It returns nil if the construct is guaranteed to
// produce the same rows as the equivalent explicit joins, and an
// IntegrityError, UnsupportedError, or SchemaError otherwise. Every error is
// fatal to the current query; nothing is retried.
//
// Verify runs during analysis, before planning, once per query containing
// foreign-key join syntax.
func Verify(tree jointree.Node, trunk jointree.RelID, cat Catalog, opts ...Option) error {
	cfg := config{maxDepth: DefaultMaxDepth, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := &builder{g: newGraph(), cat: cat, maxDepth: cfg.maxDepth, log: cfg.log}
	if _, err := b.walk(tree, 0); err != nil {
		return err
	}
	g := b.g
	cfg.log.Debug("built foreign key join graph",
		zap.Int("nodes", len(g.nodes)),
		zap.Int("edges", len(g.edges)),
	)

	// A structural failure suppresses the safety pass: the safety walk
	// assumes tree-ness and is undefined over anything else.
	root, ok := findRoot(g)
	if !ok {
		return &IntegrityError{
			Message: "foreign key join relations do not form a single rooted tree",
			At:      nodePos(tree),
		}
	}
	if got := g.nodes[root].rel; got != trunk {
		return &IntegrityError{
			Message: fmt.Sprintf("trunk relation must be the root of the foreign key join tree (root is relation %d, trunk is relation %d)", got, trunk),
			At:      nodePos(tree),
		}
	}
	if err := g.verifySafety(root); err != nil {
		return err
	}
	cfg.log.Debug("foreign key join verified",
		zap.Int("trunk", int(trunk)),
		zap.Int("relations", len(g.nodes)),
	)
	return nil
}
