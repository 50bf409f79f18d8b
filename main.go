package main

import "github.com/papapumpkin/conflux/cmd"

func main() {
	cmd.Execute()
}
