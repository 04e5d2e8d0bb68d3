package annotate

import (
	"fmt"
)

// DependencyKind selects which dependency representation of the markup is
// read.
type DependencyKind string

const (
	Basic                DependencyKind = "basic"
	Collapsed            DependencyKind = "collapsed"
	CollapsedCCProcessed DependencyKind = "collapsed-ccprocessed"
)

// Element returns the value of the dependencies element type attribute that
// holds this representation.
func (k DependencyKind) Element() string {
	return string(k) + "-dependencies"
}

func (k DependencyKind) valid() bool {
	switch k {
	case Basic, Collapsed, CollapsedCCProcessed:
		return true
	}
	return false
}

// OverlapMetric names the score used to pick among several mentions found in
// the range of a feed mention.
type OverlapMetric string

const (
	MetricJaccard      OverlapMetric = "jaccard"
	MetricIntersection OverlapMetric = "intersection"
)

// DefaultLongMentionThreshold is the token length above which a
// coreference mention is considered long.
const DefaultLongMentionThreshold = 5

// Options controls how a document is built.
type Options struct {
	Dependencies DependencyKind `yaml:"dependencies"`

	// ExcludeOrdinalNER drops entity types that are quantities or dates
	// rather than named things.
	ExcludeOrdinalNER bool `yaml:"exclude_ordinal_ner"`

	ExcludeLongMentions  bool `yaml:"exclude_long_mentions"`
	LongMentionThreshold int  `yaml:"long_mention_threshold"`

	// ExcludeNonNERCoreferences keeps only the chains whose representative
	// is a detected entity.
	ExcludeNonNERCoreferences bool `yaml:"exclude_non_ner_coreferences"`

	OverlapMetric OverlapMetric `yaml:"overlap_metric"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Dependencies:         CollapsedCCProcessed,
		LongMentionThreshold: DefaultLongMentionThreshold,
		OverlapMetric:        MetricJaccard,
	}
}

// withDefaults fills the zero fields of o with their default values.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Dependencies == "" {
		o.Dependencies = d.Dependencies
	}
	if o.LongMentionThreshold == 0 {
		o.LongMentionThreshold = d.LongMentionThreshold
	}
	if o.OverlapMetric == "" {
		o.OverlapMetric = d.OverlapMetric
	}
	return o
}

// Validate checks o after filling zero fields with defaults. Errors wrap
// ErrConfig.
func (o Options) Validate() error {
	o = o.withDefaults()

	if !o.Dependencies.valid() {
		return fmt.Errorf("%w: dependencies must be one of %q, %q or %q, got %q",
			ErrConfig, Basic, Collapsed, CollapsedCCProcessed, o.Dependencies)
	}

	if o.LongMentionThreshold < 0 {
		return fmt.Errorf("%w: long mention threshold must not be negative, got %d", ErrConfig, o.LongMentionThreshold)
	}

	if _, ok := metrics[o.OverlapMetric]; !ok {
		return fmt.Errorf("%w: overlap metric must be %q or %q, got %q",
			ErrConfig, MetricJaccard, MetricIntersection, o.OverlapMetric)
	}

	return nil
}
