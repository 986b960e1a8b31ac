// Package render turns the merged event list into the published artifacts:
// a static HTML page, a JSON feed, and a plain listing for the console.
//
// Rendering is deterministic for a fixed event list and generation time.
package render
