// Package sqlstore implements the engine's persistence contracts over
// database/sql. It targets PostgreSQL through the pgx stdlib driver and
// ships its schema as embedded goose migrations.
//
// All repositories run against DBTX, a minimal interface satisfied by both
// *sql.DB and *sql.Tx. The TxRunner carries an open *sql.Tx in the context;
// repository methods pick it up transparently, so the same repository value
// works inside and outside a unit of work.
package sqlstore
