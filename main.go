package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mdview/server/config"
	"github.com/mdview/server/dialog"
	"github.com/mdview/server/logger"
	"github.com/mdview/server/mcp"
	"github.com/mdview/server/middleware"
	"github.com/mdview/server/session"
	"github.com/mdview/server/ws"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build info (set via ldflags)
var version = "dev"

const shutdownTimeout = 5 * time.Second

func newHandler(token string, devMode bool, sess *session.Manager, picker dialog.Picker) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"pong"}`))
	})

	mux.HandleFunc("GET /api/session", func(w http.ResponseWriter, r *http.Request) {
		log := logger.NewRequestLogger()
		snap := sess.Snapshot()

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.Error("failed to encode session snapshot", "error", err)
			return
		}
		log.Debug("served session snapshot", "path", snap.Path, "hasModTime", snap.HasModTime)
	})

	// WebSocket endpoint (handles its own auth via the first RPC call)
	mux.Handle("GET /ws", ws.NewRPCHandler(token, version, devMode, sess, picker))

	return middleware.Auth(token, "/health", "/ws")(mux)
}

// reloadLogLevel applies a reloaded config. Dev mode keeps debug logging.
func reloadLogLevel(c *config.Config) {
	logger.SetLevel(c.Log.Level, c.DevMode)
}

func newPicker(cfg *config.Config) dialog.Picker {
	if cfg.DialogPath != "" {
		return dialog.StaticPicker{Path: cfg.DialogPath}
	}
	return dialog.NewNativePicker()
}

// newSession builds the process session. args are the positional arguments
// after the program name, so the candidate file lands at position 1.
func newSession(args []string) *session.Manager {
	sess := session.NewManager(nil)
	sess.LoadStartupArg(append([]string{os.Args[0]}, args...))
	return sess
}

func serve(ctx context.Context, cfg *config.Config, args []string) error {
	sess := newSession(args)

	token := cfg.Token
	if token == "" {
		token = uuid.NewString()
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:           newHandler(token, cfg.DevMode, sess, newPicker(cfg)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wsURL := "ws://" + ln.Addr().String() + "/ws"
	printConnectInfo(os.Stdout, wsURL, token, cfg.QR && isTerminal(os.Stdout))

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", ln.Addr().String(), "version", version)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runMCP(ctx context.Context, cfg *config.Config, args []string) error {
	sess := newSession(args)
	return mcp.NewServer(sess, newPicker(cfg), version).Run(ctx, os.Stdin, os.Stdout)
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string
	var cfg *config.Config

	root := &cobra.Command{
		Use:     "mdview [file]",
		Short:   "Backend for the mdview markdown viewer",
		Version: version,
		Long: `mdview serves file commands (read_file, get_initial_file, open_file_dialog,
check_file_changed, dismiss_file_change) to the viewer front-end over a local
JSON-RPC websocket. A .md or .markdown file given as the first argument is
offered to the front-end as the initial file.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded

			logger.Init(logger.Config{
				Level:   cfg.Log.Level,
				Format:  cfg.Log.Format,
				File:    cfg.Log.File,
				DevMode: cfg.DevMode,
			})
			config.Watch(v, reloadLogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/mdview/config.yaml)")
	flags.String("addr", "", "listen address for the command transport")
	flags.String("token", "", "front-end auth token (random when empty)")
	flags.Bool("dev", false, "development mode: debug logging, relaxed websocket origin checks")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("qr", false, "print a QR code of the connection URL")
	flags.String("dialog-path", "", "answer open_file_dialog with this path instead of showing a dialog")

	_ = v.BindPFlag("addr", flags.Lookup("addr"))
	_ = v.BindPFlag("token", flags.Lookup("token"))
	_ = v.BindPFlag("dev_mode", flags.Lookup("dev"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("qr", flags.Lookup("qr"))
	_ = v.BindPFlag("dialog_path", flags.Lookup("dialog-path"))

	root.AddCommand(&cobra.Command{
		Use:   "mcp [file]",
		Short: "Serve the file commands as MCP tools over stdio",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd.Context(), cfg, args)
		},
	})

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
