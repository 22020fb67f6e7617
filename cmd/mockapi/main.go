// Package main provides the mockapi CLI.
package main

import "github.com/nexusvpn/mockapi/internal/cli"

func main() {
	cli.Execute()
}
