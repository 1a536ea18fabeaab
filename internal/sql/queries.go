// Package sql embeds the warehouse DDL migrations and the handful of
// analytical queries the pipeline issues verbatim.
package sql

import "embed"

// Migrations holds the warehouse schema DDL, applied in filename order.
//
//go:embed migrations
var Migrations embed.FS

// CubeFromWarehouse aggregates the star schema into cube cells: one
// row per (age_group, smoker_flag, region, bmi_category) combination
// present in the fact table, ordered lexicographically by key.
//
//go:embed queries/cube_from_warehouse.sql
var CubeFromWarehouse string

// ReconstructPrepared joins fact rows back to their dimensions,
// recovering the prepared-record columns retained in the star schema.
// Used by round-trip verification.
//
//go:embed queries/reconstruct_prepared.sql
var ReconstructPrepared string
