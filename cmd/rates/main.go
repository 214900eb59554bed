package main

import (
	"log"
	"os"
)

func main() {
	if err := run(newCLI(), os.Args); err != nil {
		log.Fatal(err)
	}
}
