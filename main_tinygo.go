//go:build tinygo && baremetal

package main

import (
	"keycalc/app"
	"keycalc/hal"
)

func main() {
	app.Run(hal.New())
}
