package main

import "chai-app-go/cmd/chai/commands"

func main() {
	commands.Execute()
}
