// Package gsvd: sentinel error set.
// This file defines ONLY package-level sentinel errors. Facades wrap them
// with operation context via fmt.Errorf("Tag: %w", err); callers match with
// errors.Is. None of these are retried internally — inputs are unchanged
// between attempts, so retry policy belongs to the caller.

package gsvd

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned at problem construction (and by
	// SolveDense) when the two matrices do not share a column count after
	// optional transposition. It is raised before any approximation or
	// kernel work, so a failed construction has no side effects.
	ErrDimensionMismatch = errors.New("gsvd: matrices must share the same column count")

	// ErrRangeApproxFailed reports that the range approximator returned no
	// basis for one of the inputs. The wrapping message identifies whether
	// matrix 1 or matrix 2 failed; the dense kernel is never invoked.
	ErrRangeApproxFailed = errors.New("gsvd: range approximation failed")

	// ErrNonConvergence surfaces the kernel's documented failure code 1:
	// the iterative Jacobi procedure did not converge.
	ErrNonConvergence = errors.New("gsvd: dense kernel did not converge")

	// ErrInvalidArgument surfaces a negative kernel status code: argument
	// -info had an illegal value. The wrapping message names the index.
	ErrInvalidArgument = errors.New("gsvd: dense kernel rejected an argument")

	// ErrInternalInconsistency reports output that violates the kernel's
	// documented contract — an undocumented status code, a broken
	// cosine/sine identity, a mis-ordered coefficient sequence, or a
	// non-orthogonal factor. It indicates a kernel contract breach or a
	// latent bug, never a recoverable input problem.
	ErrInternalInconsistency = errors.New("gsvd: dense kernel output violates its contract")
)

// gsvdErrorf wraps err with an operation tag, preserving the sentinel for
// errors.Is. Call only with non-nil err.
func gsvdErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
