// Package data holds the datasets compiled into the binary.
package data

import _ "embed"

//go:embed topics.json
var Topics []byte

//go:embed rates.csv
var Rates []byte
