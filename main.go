package main

import (
	"agentstat/cmd"
)

func main() {
	cmd.Execute()
}
