// Package mapping builds, validates, and persists the old->new GUID table.
//
// The table is produced by correlating descriptor files between the source
// and reference trees by filename stem. It can be exported to a YAML file
// for human review and loaded back for a later apply run.
package mapping
