package main

import (
	"fmt"
	"os"

	"github.com/chatmigrate/slack2discord/cmd/slack2discord/commands"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version)
		return
	}
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
