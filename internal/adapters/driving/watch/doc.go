// Package watch re-exports a presentation document every time its file
// changes on disk.
//
// The watcher observes the document's parent directory rather than the file
// itself, so editors that save by writing a temporary file and renaming it
// over the original are still picked up.
package watch
