// Package catalog resolves the option lists of database-backed select fields.
//
// A Resolver maps a field to the entries of one of a fixed set of catalogs
// (tipos_candidatos, sucursales, centros_costo, ciudades). AsyncResolver
// fetches each catalog in the background the first time it is requested and
// reports the field as loading until the fetch completes; results that arrive
// after Close are discarded. Fetch failures are logged and surface as an empty
// list.
//
// The package also exposes a small net/http handler that serves catalog
// entries as JSON options (`{"data":[{"value":"...","label":"..."}]}`) and a
// cron driven Refresher that invalidates cached catalogs on a schedule.
package catalog
