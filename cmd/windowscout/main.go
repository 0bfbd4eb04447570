package main

import "github.com/bryanchriswhite/WindowScout/cmd/windowscout/commands"

func main() {
	commands.Execute()
}
