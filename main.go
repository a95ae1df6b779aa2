package main

import "github.com/ethpandaops/activation-eta/cmd"

func main() {
	cmd.Execute()
}
