// Package dataset holds the rows an index is built over and reads them from
// CSV files, locally or from any blobstore.BlobStore.
//
// Row positions are the indices search results refer to. Removing a row
// shifts every later row down by one.
package dataset
