package main

import (
	"context"
	"fmt"
	"os"

	"github.com/llehouerou/zeedle/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "zeedle: %v\n", err)
		os.Exit(1)
	}
}
