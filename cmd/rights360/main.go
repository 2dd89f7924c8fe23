package main

import (
	"log"

	"github.com/rights360/rights360/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
