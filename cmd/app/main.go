// Launcher that starts the API server and the terminal UI as subprocesses.
// The API gets a head start so the UI finds a live backend, and signals are
// forwarded so Ctrl+C tears both down.
package main

import (
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cone-one/ragchat/pkg/logger_i"
)

const apiStartupDelay = 2 * time.Second

func main() {
	logger_i.Init()
	logger := logger_i.NewLogger("launcher")

	self, err := os.Executable()
	if err != nil {
		logger.Error("resolving executable path", "error", err)
		os.Exit(1)
	}
	binDir := filepath.Dir(self)

	api := exec.Command(filepath.Join(binDir, "api"))
	api.Stdout = os.Stdout
	api.Stderr = os.Stderr
	api.Env = os.Environ()
	if err := api.Start(); err != nil {
		logger.Error("starting api server", "error", err)
		os.Exit(1)
	}
	logger.Info("api server started", "pid", api.Process.Pid)

	time.Sleep(apiStartupDelay)

	ui := exec.Command(filepath.Join(binDir, "ui"))
	ui.Stdin = os.Stdin
	ui.Stdout = os.Stdout
	ui.Stderr = os.Stderr
	ui.Env = os.Environ()
	if err := ui.Start(); err != nil {
		logger.Error("starting ui", "error", err)
		_ = api.Process.Signal(syscall.SIGTERM)
		_, _ = api.Process.Wait()
		os.Exit(1)
	}
	logger.Info("ui started", "pid", ui.Process.Pid)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signals
		logger.Info("forwarding signal to children", "signal", sig.String())
		_ = ui.Process.Signal(sig)
		_ = api.Process.Signal(sig)
	}()

	uiErr := ui.Wait()
	_ = api.Process.Signal(syscall.SIGTERM)
	apiErr := api.Wait()

	if uiErr != nil || apiErr != nil {
		logger.Error("shutdown finished with errors", "ui", uiErr, "api", apiErr)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}
