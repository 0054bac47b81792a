package main

import "github.com/chibuka/algoviz/cmd"

func main() {
	cmd.Execute()
}
