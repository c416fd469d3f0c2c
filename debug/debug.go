// Package debug provides diagnostic logging switched on by environment
// variables, e.g. XY_DEBUG_RESOLVE=1.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse     bool
	Merge     bool
	Resolve   bool
	Construct bool
	Load      bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("XY_DEBUG_PARSE")
	d.Merge = boolEnv("XY_DEBUG_MERGE")
	d.Resolve = boolEnv("XY_DEBUG_RESOLVE")
	d.Construct = boolEnv("XY_DEBUG_CONSTRUCT")
	d.Load = boolEnv("XY_DEBUG_LOAD")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Merge() bool {
	return d.Merge
}
func Resolve() bool {
	return d.Resolve
}
func Construct() bool {
	return d.Construct
}
func Load() bool {
	return d.Load
}
