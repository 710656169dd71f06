package main

import (
	"log"

	"github.com/spigell/jobsift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
