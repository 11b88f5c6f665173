// @title Audit Service API
// @version 25.10.14.1
// @description Append-only audit trail for client and invoice lifecycle events.
// @BasePath /

// @Tag.name Meta
// @Tag.description Operational probes and metadata about the audit service.

// @Tag.name Audit Events
// @Tag.description Record and query the immutable audit trail.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"auditservice/internal"
	"auditservice/internal/env"

	"github.com/gofiber/fiber/v3"
)

func main() {
	deployment := flag.String("deployment", "", "deployment profile (dev|test|prod)")
	portFlag := flag.String("port", "", "port to listen on")
	envRoot := flag.String("env-root", "", "directory containing environment files")
	appVersion := flag.String("app-version", "", "application version override")

	flag.Parse()

	deploy := strings.TrimSpace(*deployment)
	if deploy == "" {
		args := flag.Args()
		if len(args) == 0 {
			fmt.Println("Usage: server --deployment <type> --port <port> [--env-root <dir>] [--app-version <version>]")
			os.Exit(1)
		}
		deploy = strings.TrimSpace(args[0])
	}

	port := strings.TrimSpace(*portFlag)
	if port == "" {
		port = strings.TrimSpace(os.Getenv("PORT"))
	}
	if port == "" {
		port = "3000"
	}

	app, shutdown := internal.SetupApp(deploy, *envRoot, *appVersion)
	defer shutdown()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		_ = app.Shutdown()
	}()

	slog.Info("starting audit service", "version", env.VERSION, "deployment", env.DEPLOYMENT, "port", port, "store", env.STORE)

	if err := app.Listen(fmt.Sprintf(":%s", port), fiber.ListenConfig{
		EnablePrefork:         env.PREFORK,
		DisableStartupMessage: env.DEPLOYMENT == "prod",
	}); err != nil {
		slog.Error("listen failed", "port", port, "error", err)
		os.Exit(1)
	}
}
