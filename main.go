package main

import (
	"github.com/sidkik/bolt-sync/cmd"
	"github.com/sidkik/bolt-sync/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
