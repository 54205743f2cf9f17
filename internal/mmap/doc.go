// Package mmap maps files read-only into memory for the local blob store.
package mmap
