// Package leveling maps raw benchmark test results to one of five ordered skill tiers.
//
// A raw value is converted into a scalar according to the exercise's [ValueKind], the per-gender benchmark row of
// the exercise is resolved and converted into the same scalar space, and the highest tier whose threshold is met
// is selected. Time based exercises are "lower is better", every other kind is "higher is better".
//
// Everything in this package is a pure function over data already loaded by the caller. Failures never surface as
// errors: a value that cannot be classified produces a [Result] with a nil Achieved tier and a [Reason].
package leveling
