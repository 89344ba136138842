// Package filesystem provides the types.FS implementations used by
// monolink: the real OS filesystem for production and an afero-backed
// one for tests.
package filesystem
