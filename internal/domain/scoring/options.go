// Package scoring computes role-fit scores from player attributes.
package scoring

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithNormalizationCeiling sets the attribute value that normalizes to 1.0.
func WithNormalizationCeiling(ceiling float64) Option {
	return func(e *Engine) {
		if ceiling > 0 {
			e.ceiling = ceiling
		}
	}
}
