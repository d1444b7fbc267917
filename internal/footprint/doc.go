// Package footprint aggregates per-kg environmental factors of feed
// ingredients over a feed blend.
//
// A blend is an ordered list of (key, mass fraction) pairs. Each key is
// resolved against an ingredient table by case-insensitive substring match,
// taking the first matching ingredient in table order. Resolved pairs
// contribute factor * fraction * feed mass to the per-tonne totals, which can
// then be scaled linearly to a national production volume.
//
// Every function in this package is pure: inputs are never mutated and no
// state is kept between calls, so results can be computed concurrently for
// independent requests.
package footprint
