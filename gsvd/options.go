// Package gsvd: functional configuration for the engine.
// Defaults are documented constants; WithX constructors validate their
// inputs and panic on nonsensical values (programmer error, never data
// error). Public APIs consume ...Option.

package gsvd

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/numgraph/randgsvd/approx"
	"github.com/numgraph/randgsvd/matrix"
)

// DefaultOrthoTol is the elementwise tolerance for the orthogonality
// validation of the returned U and V factors.
const DefaultOrthoTol = 1e-5

// config carries the engine collaborators and knobs. Shared by Problem and
// SolveDense so both accept the same option set.
type config[T matrix.Scalar] struct {
	apx      approx.Approximator[T]
	prim     Primitive
	log      zerolog.Logger
	orthoTol float64
	t1, t2   Transform
}

// defaultConfig returns the documented defaults: seeded randomized
// approximator, gonum kernel, no-op logger, DefaultOrthoTol, identity
// transforms.
func defaultConfig[T matrix.Scalar]() config[T] {
	return config[T]{
		apx:      approx.NewRandomized[T](approx.DefaultSeed),
		prim:     lapackPrimitive{},
		log:      zerolog.Nop(),
		orthoTol: DefaultOrthoTol,
		t1:       IdentityTransform(),
		t2:       IdentityTransform(),
	}
}

// Option mutates the engine configuration.
type Option[T matrix.Scalar] func(*config[T])

// WithApproximator replaces the default randomized range approximator.
// Panics on nil (programmer error).
func WithApproximator[T matrix.Scalar](a approx.Approximator[T]) Option[T] {
	if a == nil {
		panic("gsvd: WithApproximator(nil)")
	}

	return func(c *config[T]) { c.apx = a }
}

// WithPrimitive replaces the dense GSVD kernel backend.
// Panics on nil (programmer error).
func WithPrimitive[T matrix.Scalar](p Primitive) Option[T] {
	if p == nil {
		panic("gsvd: WithPrimitive(nil)")
	}

	return func(c *config[T]) { c.prim = p }
}

// WithLogger attaches a zerolog logger for diagnostic events (dimensions,
// rank partition). Logging never affects control flow.
func WithLogger[T matrix.Scalar](l zerolog.Logger) Option[T] {
	return func(c *config[T]) { c.log = l }
}

// WithOrthoTol overrides the orthogonality-validation tolerance.
// Panics unless 0 < tol < 1 (programmer error).
func WithOrthoTol[T matrix.Scalar](tol float64) Option[T] {
	if !(tol > 0 && tol < 1) {
		panic("gsvd: WithOrthoTol outside (0,1)")
	}

	return func(c *config[T]) { c.orthoTol = tol }
}

// WithTransform1 sets the optional transform for the first matrix.
// Panics on a zero or non-finite scale (programmer error).
func WithTransform1[T matrix.Scalar](t Transform) Option[T] {
	validateTransform(t)

	return func(c *config[T]) { c.t1 = t }
}

// WithTransform2 sets the optional transform for the second matrix.
// Panics on a zero or non-finite scale (programmer error).
func WithTransform2[T matrix.Scalar](t Transform) Option[T] {
	validateTransform(t)

	return func(c *config[T]) { c.t2 = t }
}

func validateTransform(t Transform) {
	if t.Scale == 0 || math.IsNaN(t.Scale) || math.IsInf(t.Scale, 0) {
		panic("gsvd: transform scale must be finite and nonzero")
	}
}
