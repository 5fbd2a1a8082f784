package main

import "nikki/cmd/nikki-cli/cmd"

func main() {
	cmd.Execute()
}
