package main

import "github.com/lepinkainen/marquee/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
