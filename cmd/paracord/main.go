package main

import (
	"os"

	"github.com/daiimus/paracord/cmd"
)

func main() {
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
