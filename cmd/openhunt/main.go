package main

import "github.com/openhunt/openhunt/cmd/openhunt/commands"

func main() {
	commands.Execute()
}
