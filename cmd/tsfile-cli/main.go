package main

import (
	"log"

	"github.com/weiAX95/auto-create-tsfile-cli/internal/cli"
)

func main() {
	log.SetFlags(0)
	if err := cli.Execute(); err != nil {
		log.Fatalf("tsfile: %v", err)
	}
}
