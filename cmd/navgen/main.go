package main

import "dpiportal/cmd/navgen/cli"

func main() {
	cli.InitAndExecute()
}
