package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/penev92/ModularAI/agent"
	"github.com/penev92/ModularAI/capability"
	"github.com/penev92/ModularAI/config"
	"github.com/penev92/ModularAI/debugfeed"
	"github.com/penev92/ModularAI/ipc"
	"github.com/penev92/ModularAI/modular"
)

const banner = `
 __  __           _       _              _    ___
|  \/  | ___   __| |_   _| | __ _ _ __  / \  |_ _|
| |\/| |/ _ \ / _' | | | | |/ _' | '__|/ _ \  | |
| |  | | (_) | (_| | |_| | | (_| | |  / ___ \ | |
|_|  |_|\___/ \__,_|\__,_|_|\__,_|_| /_/   \_\___|

Modular Skirmish AI`

func main() {
	socketPath := flag.String("socket", "/tmp/modularai.sock", "unix socket the game mod connects to")
	configPath := flag.String("config", "", "bot configuration file (YAML); embedded defaults when empty")
	debug := flag.Bool("debug", false, "enable bot debug output and debug-level logging")
	debugAddr := flag.String("debug-addr", "", "serve the debug feed over websocket on this address, e.g. :8089")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Bot.Debug = true
	}
	registry, err := cfg.Registry()
	if err != nil {
		slog.Error("invalid actor definitions", "error", err)
		os.Exit(1)
	}
	// Fail before accepting connections rather than on the first hello.
	if _, err := modular.FromConfig(cfg, nil); err != nil {
		slog.Error("invalid module configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("starting", "ai", cfg.Bot.Name, "actors", registry.Len(), "modules", len(cfg.Modules), "updateDelay", cfg.Bot.UpdateDelay)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sinks := modular.Sinks{modular.LogSink{}}
	if *debugAddr != "" {
		hub := debugfeed.NewHub(debugfeed.DefaultBuffer)
		sinks = append(sinks, hub)
		go func() {
			if err := debugfeed.Serve(ctx, *debugAddr, hub); err != nil {
				slog.Error("debug feed stopped", "error", err)
			}
		}()
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, cfg, registry, sinks)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default()
	}
	return config.Load(path)
}

func handleConn(conn net.Conn, cfg *config.Config, registry *capability.Registry, sink modular.DebugSink) {
	c := ipc.NewConnection(conn, nil)
	a := agent.New(c, cfg, registry, sink)
	c.RegisterHandler(ipc.TypeHello, func(env ipc.Envelope) (*ipc.Envelope, error) {
		resp, err := a.HandleHello(env)
		if err == nil {
			c.Player = a.Player
		}
		return resp, err
	})
	c.RegisterHandler(ipc.TypeGameState, a.HandleGameState)
	c.ReadLoop()
	slog.Info("session ended", "session", a.ID, "player", a.Player)
}
