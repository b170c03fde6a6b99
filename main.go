package main

import "github.com/armon-kel/beamctl/cmd"

func main() {
	cmd.Execute()
}
