// Package web holds the single page served at "/".
package web

import _ "embed"

//go:embed index.html
var Index []byte
