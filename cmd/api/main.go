package main

import (
	"log"
	"os"
	"strconv"

	"clientintel/cmd"
)

func main() {
	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	port := 3009
	if p := os.Getenv("CLIENTINTEL_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("invalid CLIENTINTEL_PORT %q: %v", p, err)
		}
		port = parsed
	}

	err = apiHandler.StartApi(port)
	if err != nil {
		log.Fatal(err)
	}
}
