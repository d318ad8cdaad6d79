package main

import "github.com/vfg2006/kenlo-pricing-api/internal/cli"

func main() {
	cli.Execute()
}
