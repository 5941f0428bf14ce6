// Package content implements the Content Store: the built-in scholarship and
// course catalogues plus the persisted community feed.
package content
