package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/strelets/chatd/internal/client"
)

func main() {
	addr := flag.String("addr", "localhost:8888", "server address")
	user := flag.String("user", "", "username (prompted for when empty)")
	flag.Parse()

	username := *user
	if username == "" {
		fmt.Print("Enter your username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to read username:", err)
			os.Exit(1)
		}
		username = strings.TrimSpace(line)
	}

	if err := client.Run(*addr, username); err != nil {
		fmt.Fprintln(os.Stderr, "Something went wrong:", err)
		os.Exit(1)
	}
}
