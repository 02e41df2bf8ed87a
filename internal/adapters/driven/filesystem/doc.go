// Package filesystem provides the local directory implementation of
// driven.FileSource, with recursive change notification via fsnotify.
package filesystem
