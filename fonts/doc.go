// Package fonts manages the directory of font files a renderer draws
// with.
//
// A Set is opened once from a directory and is immutable afterwards.
// Resolve never fails: a missing or broken font falls back to the first
// file of the set and finally to the built-in Go Regular face.
//
// Provision fills a directory from a list of remote sources before a Set
// is opened:
//
//	if err := fonts.Provision(ctx, "fonts", fonts.DefaultSources); err != nil {
//		return err
//	}
//	set, err := fonts.Open("fonts")
package fonts
