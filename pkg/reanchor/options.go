package reanchor

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
	differ Differ
	policy EqualPolicy
}

// Option configures the components of this package.
type Option func(*options)

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDiffer replaces the default diff-match-patch differ.
func WithDiffer(d Differ) Option {
	return func(o *options) {
		if d != nil {
			o.differ = d
		}
	}
}

// WithEqualPolicy replaces the default Equal sub-case policy.
func WithEqualPolicy(p EqualPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.policy = p
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: zap.NewNop(),
		policy: CodepointPolicy{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.differ == nil {
		o.differ = NewDiffMatchPatch(WithLogger(o.logger))
	}
	return o
}
