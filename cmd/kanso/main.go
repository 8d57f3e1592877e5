package main

import "github.com/comitanigiacomo/kanso-audit/internal/cli"

func main() {
	cli.Execute()
}
