package main

import (
	"log"

	"github.com/goliatone/go-toc/internal/cli"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("toc-cli: ")
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
