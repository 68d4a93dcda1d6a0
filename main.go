package main

import (
	"github.com/joho/godotenv"
	"github.com/rpgo/wealth-projector/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
