// Package schema embeds the idempotent table definitions applied at startup
// and by `recom schema apply`.
package schema

import _ "embed"

//go:embed schema.sql
var SQL string
