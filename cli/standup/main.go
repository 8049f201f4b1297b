package main

import (
	"os"

	standupcmder "github.com/standuphq/standup/cmd/standup"
)

func main() {
	cmd := standupcmder.NewStandupCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
