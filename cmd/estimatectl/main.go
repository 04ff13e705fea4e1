package main

import (
	"log"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("estimatectl: %v", err)
	}
}
