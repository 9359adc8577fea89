package vscroll

import "math"

// Engine defaults.
const (
	DefaultEstimatedItemHeight = 50.0
	DefaultOverscan            = 3
	DefaultEndReachedThreshold = 0.8
	DefaultBatchSize           = 20
)

// HeightFunc returns the estimated height of the item at the given index.
// Estimates are provisional: a reported measurement for the same index takes
// precedence until the collection changes.
type HeightFunc func(index int) float64

// Option configures an [Engine]. Invalid values are rejected by [New].
type Option func(*options)

type options struct {
	fixedHeight   float64
	fixedSet      bool
	estimate      float64
	heightFunc    HeightFunc
	heightFuncSet bool
	overscan      int
	threshold     float64

	onScroll       func(offset float64)
	onEndReached   func()
	onRangeChanged func(r Range)
}

func defaultOptions() options {
	return options{
		estimate:  DefaultEstimatedItemHeight,
		overscan:  DefaultOverscan,
		threshold: DefaultEndReachedThreshold,
	}
}

func (o *options) validate() error {
	if o.fixedSet && !validHeight(o.fixedHeight) {
		return ErrInvalidHeight
	}
	if !validHeight(o.estimate) {
		return ErrInvalidHeight
	}
	if o.heightFuncSet && o.heightFunc == nil {
		return ErrNilHeightFunc
	}
	if o.overscan < 0 {
		return ErrInvalidOverscan
	}
	if math.IsNaN(o.threshold) || o.threshold <= 0 || o.threshold > 1 {
		return ErrInvalidThreshold
	}
	return nil
}

// WithFixedItemHeight puts the engine in fixed-height mode: every item is
// exactly h units tall, offsets are closed-form, and measurement reports are
// ignored.
func WithFixedItemHeight(h float64) Option {
	return func(o *options) {
		o.fixedHeight = h
		o.fixedSet = true
	}
}

// WithEstimatedItemHeight sets the provisional height used for items that
// have neither a height-function value nor a reported measurement. The
// default is [DefaultEstimatedItemHeight].
func WithEstimatedItemHeight(h float64) Option {
	return func(o *options) {
		o.estimate = h
	}
}

// WithHeightFunc installs a per-index estimate function for dynamic mode.
func WithHeightFunc(fn HeightFunc) Option {
	return func(o *options) {
		o.heightFunc = fn
		o.heightFuncSet = true
	}
}

// WithOverscan sets how many extra items the resolver includes on each side
// of the strictly visible range. The default is [DefaultOverscan].
func WithOverscan(n int) Option {
	return func(o *options) {
		o.overscan = n
	}
}

// WithEndReachedThreshold sets the fraction of the total height past which
// the end-reached callback fires. The default is
// [DefaultEndReachedThreshold].
func WithEndReachedThreshold(f float64) Option {
	return func(o *options) {
		o.threshold = f
	}
}

// WithOnScroll registers a callback invoked with the processed offset after
// every scroll event.
func WithOnScroll(fn func(offset float64)) Option {
	return func(o *options) {
		o.onScroll = fn
	}
}

// WithOnEndReached registers the end-reached callback. It fires at most once
// per monotonic crossing of the threshold and re-arms only after the scroll
// position leaves the threshold zone.
func WithOnEndReached(fn func()) Option {
	return func(o *options) {
		o.onEndReached = fn
	}
}

// WithOnRangeChanged registers a callback invoked whenever the resolved
// visible range differs from the previous one.
func WithOnRangeChanged(fn func(r Range)) Option {
	return func(o *options) {
		o.onRangeChanged = fn
	}
}
