// Package store implements the flat-file JSON persistence behind the site
// content: one array file per collection, re-read on every request and
// overwritten whole on save. There is deliberately no caching, locking, or
// version check; concurrent saves resolve last-write-wins.
package store
