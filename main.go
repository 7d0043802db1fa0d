package main

import (
	"os"

	"github.com/robertwhiffin/ai-slide-generator-sub002/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
