// Package cache memoizes operation results.
//
// A Memoizer derives a key from each call's input with a Keyer, returns the
// stored result on a hit, and calls the operation (storing a successful
// result) on a miss. Inputs are compared by value: two inputs with the same
// canonical encoding share an entry. Inputs that cannot be encoded (funcs,
// channels, NaN) fail with ErrUnhashableKey before the operation runs.
//
// Results live in a Cache: MemoryCache grows without bound and BoundedCache
// (backed by sturdyc) evicts once Policy.MaxEntries is reached.
package cache
