// Package videoid derives stable job identifiers from video URLs.
//
// The same video submitted through different URL shapes (short links,
// tracking parameters, mobile hosts) must map to the same identifier so
// the queue can deduplicate work. Identifiers are platform-prefixed and
// safe for filesystem and URL path use.
package videoid
