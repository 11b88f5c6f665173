package main

import (
	"context"
	"fmt"
	"os"

	"auditservice/internal/auditctl"
)

func main() {
	if err := auditctl.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "auditctl: %v\n", err)
		os.Exit(1)
	}
}
