package main

import (
	"fmt"
	"os"

	"github.com/strelets/chatd/internal/server"
)

func main() {
	if err := server.Run(server.NewConfigFromEnv()); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		os.Exit(1)
	}
}
