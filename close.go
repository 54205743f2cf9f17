package vectree

// Close releases the query cache and marks the DB closed. Every later call
// except Close itself fails with ErrClosed.
//
// Close is idempotent.
func (db *DB) Close() error {
	if db == nil {
		return nil
	}
	if !db.closed.CompareAndSwap(false, true) {
		return nil
	}

	db.cache.purge()
	db.logger.Debug("db closed", "vectors", db.idx.Len())

	return nil
}
