package main

import "github.com/statfetch/bodyshape-cli/cmd"

func main() {
	cmd.Execute()
}
