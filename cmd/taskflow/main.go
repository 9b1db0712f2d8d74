package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/saulo-duarte/taskflow/internal/cli"
)

func main() {
	cli.Execute()
}
