package schema

import _ "embed"

// DDL creates the snapshot mirror table. It is safe to run on every start.
//
//go:embed schema.sql
var DDL string
