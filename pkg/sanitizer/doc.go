// Package sanitizer normalizes operator and user supplied strings before validation
// and storage. Every function is idempotent.
package sanitizer
