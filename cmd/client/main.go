package main

import "liquidtrack/cmd/client/cmd"

func main() {
	cmd.Execute()
}
