package linear

// DefaultAlpha is the ridge penalty used when none is configured.
const DefaultAlpha = 1.0

// Option configures a Regression.
type Option func(*Regression)

// WithAlpha sets the L2 penalty added to the normal equations. Zero gives
// ordinary least squares.
func WithAlpha(alpha float64) Option {
	return func(r *Regression) {
		r.Alpha = alpha
	}
}

// WithClampNegative clips negative predictions to zero.
func WithClampNegative(clamp bool) Option {
	return func(r *Regression) {
		r.ClampNegative = clamp
	}
}
