package main

import "github.com/onflow/inheritance-guard/cmd/guard/cmd"

func main() {
	cmd.Execute()
}
