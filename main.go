package main

import (
	"os"

	"github.com/cheerioskun/antglob/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
