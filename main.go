package main

import "github.com/douhashi/triage/cmd"

func main() {
	cmd.Execute()
}
