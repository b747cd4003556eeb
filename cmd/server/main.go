package main

import "eventreg/cmd/server/cmd"

func main() {
	cmd.Execute()
}
