package main

import (
	"context"
	"fmt"
	"os"
)

// version задаётся через ldflags при сборке
var version = "dev"

func main() {
	ctx := context.Background()

	if err := NewRootCmd(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}
