package main

import "ResultAggregator/pkg/commands"

func main() {
	commands.Execute()
}
