// Package main provides the reqtool binary entry point.
package main

import "reqtool/internal/cli"

func main() {
	cli.Execute()
}
