package main

import (
	"os"

	"site-backup/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
