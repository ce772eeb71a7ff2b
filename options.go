package plcdiff

import (
	"fmt"

	"github.com/luksan/plc-diff/internal/plcxml"
)

// Option configures a conversion.
type Option interface{ apply(*config) }

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) {
	if cfg == nil {
		return
	}
	f(cfg)
}

type config struct {
	separator string
	elide     []string
	ctxAttr   string
	flowAttr  string
}

// WithBreadcrumbSeparator sets the separator joining nested container
// names in breadcrumbs. Default " > ".
func WithBreadcrumbSeparator(sep string) Option {
	return optionFunc(func(cfg *config) {
		cfg.separator = sep
	})
}

// WithElidedElements replaces the set of element names whose subtrees are
// removed in full from the output. Default LadderElements. Only names from
// the fixed classification set can be elided.
func WithElidedElements(names ...string) Option {
	return optionFunc(func(cfg *config) {
		cfg.elide = names
	})
}

// WithContextAttribute sets the attribute name carrying rung breadcrumbs.
// Default "ctx".
func WithContextAttribute(name string) Option {
	return optionFunc(func(cfg *config) {
		cfg.ctxAttr = name
	})
}

// WithFlowAttribute sets the attribute name carrying resolved transition
// neighbors. Default "flow".
func WithFlowAttribute(name string) Option {
	return optionFunc(func(cfg *config) {
		cfg.flowAttr = name
	})
}

func applyOptions(opts []Option) (config, error) {
	cfg := config{
		separator: " > ",
		elide:     []string{"LadderElements"},
		ctxAttr:   "ctx",
		flowAttr:  "flow",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&cfg)
	}
	if cfg.ctxAttr == "" || cfg.flowAttr == "" {
		return config{}, fmt.Errorf("annotation attribute names must not be empty")
	}
	for _, name := range cfg.elide {
		if plcxml.ClassifyTag(name) == plcxml.TagOther {
			return config{}, fmt.Errorf("cannot elide unclassified element %q", name)
		}
	}
	return cfg, nil
}

func (cfg *config) elideTags() map[plcxml.Tag]bool {
	tags := make(map[plcxml.Tag]bool, len(cfg.elide))
	for _, name := range cfg.elide {
		tags[plcxml.ClassifyTag(name)] = true
	}
	return tags
}
