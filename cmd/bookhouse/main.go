// cmd/bookhouse/main.go
package main

import (
	"os"

	"bookhouse/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
