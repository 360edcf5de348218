// Package schema declares the lessbuilder tables as ent schemas. The store
// migrates tables built from these declarations and queries them through
// the ent SQL builder; no client is generated.
package schema
