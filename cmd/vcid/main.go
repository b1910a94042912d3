package main

import "vcid/cmd/vcid/cmd"

func main() {
	cmd.Execute()
}
