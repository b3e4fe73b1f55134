package main

import (
	"os"

	"gopkg.in/yaml.v2"

	"sixmax-holdem/internal/config"
)

func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.Defaults()); err != nil {
		panic(err)
	}
}
