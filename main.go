// Dogechat - a terminal client for a plain-text TCP chat.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dogechat/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dogechat: %v\n", err)
		os.Exit(1)
	}
}
