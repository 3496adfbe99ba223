package main

import (
	"os"

	"github.com/eagl/console/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
