// Package classifier sorts archived URLs into static resources, file
// resources and regular pages.
//
// Classification is a plain case-insensitive suffix test against two fixed,
// ordered extension tables. The query string and fragment are removed before
// testing. Static resources (images, fonts, stylesheets, source maps and
// minified assets) are discarded by callers; file resources are routed to a
// per-extension bucket; everything else is a regular page.
//
// The order of the file table matters: the first matching entry decides the
// bucket, so a URL lands in at most one bucket.
package classifier
