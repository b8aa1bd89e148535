// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package accesslog records successful logins.

Two stores implement Store:

  - CSVStore appends "Fecha_Hora,Usuario" rows to a CSV file
    (historial_accesos.csv by default), writing the header on first use.
  - SQLStore inserts into the access_log table (see package db) and also
    keeps the hashed client IP.

Either way the admin download uses the CSV format:

	entries, err := store.List(ctx)
	err = accesslog.WriteCSV(w, entries)

The CSV store serializes writers inside one process only; it assumes it
is the single writer of its file.
*/
package accesslog
