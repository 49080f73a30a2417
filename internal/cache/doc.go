// Package cache provides a generic, thread-safe LRU cache.
//
//	c := cache.New[string, *text.FontSource](32)
//	src, err := c.GetOrCreate("Mukta-Bold.ttf", load)
//
// Failed creations are not cached, so a later call retries.
// Cache must not be copied after creation (it contains a mutex).
package cache
