// Package main is the entry point for the latte CLI.
package main

import "latte.dev/pkg/latte/cmd"

func main() {
	cmd.Execute()
}
