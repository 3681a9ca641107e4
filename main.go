package main

import "mspro-labs/tapboard/cmd"

func main() {
	cmd.Execute()
}
