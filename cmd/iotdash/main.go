// iotdash - IoT Dashboard Client Core
//
// This is the main entry point for the iotdash client. It drives the
// client-side core against a dashboard API boundary: authenticate,
// resolve the home set, fetch the selected home's rooms and print a
// status summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/CamKhongFine/iot/internal/bus"
	"github.com/CamKhongFine/iot/internal/client"
	"github.com/CamKhongFine/iot/internal/fetcher"
	"github.com/CamKhongFine/iot/internal/home"
	"github.com/CamKhongFine/iot/internal/infrastructure/config"
	"github.com/CamKhongFine/iot/internal/infrastructure/localstore"
	"github.com/CamKhongFine/iot/internal/infrastructure/logging"
	"github.com/CamKhongFine/iot/internal/room"
	"github.com/CamKhongFine/iot/internal/session"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// options are the command-line inputs for one invocation.
type options struct {
	email    string
	password string
	homeID   int64
	logout   bool
	toggle   int64
}

func main() {
	var opts options
	flag.StringVar(&opts.email, "email", "", "log in with this email (with -password)")
	flag.StringVar(&opts.password, "password", "", "password for -email")
	flag.Int64Var(&opts.homeID, "home", 0, "switch to this home after loading")
	flag.BoolVar(&opts.logout, "logout", false, "clear the stored session and exit")
	flag.Int64Var(&opts.toggle, "toggle-light", 0, "toggle the light in this room before printing")
	flag.Parse()

	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context, opts options) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting iotdash",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	// Open the local state store
	state, err := localstore.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer func() {
		if closeErr := state.Close(); closeErr != nil {
			log.Error("error closing state store", "error", closeErr)
		}
	}()
	log.Info("state store opened", "path", state.Path())

	api := client.New(cfg.API.BaseURL, cfg.GetRequestTimeout())
	log.Info("api client ready", "base_url", api.BaseURL())

	// Session: restore a stored token, or log in with the provided
	// credentials.
	sess := session.NewStore(api, state)
	sess.SetLogger(log)

	if opts.logout {
		sess.Logout(ctx)
		log.Info("session cleared")
		return nil
	}

	if err := sess.Restore(ctx); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	if !sess.IsAuthenticated() {
		if opts.email == "" || opts.password == "" {
			return fmt.Errorf("no stored session: log in with -email and -password")
		}
		if err := sess.Login(ctx, opts.email, opts.password); err != nil {
			return fmt.Errorf("logging in: %w", err)
		}
	}
	user := sess.Current()
	log.Info("authenticated", "email", user.Email, "username", user.Username)

	// Home registry and the change bus the fetchers listen on.
	changes := bus.New[home.Change]()
	homes := home.NewRegistry(api, state, changes)
	homes.SetLogger(log)

	// Home-scoped fetchers. Subscribed before the first load so the
	// initial selection triggers their first fetch.
	roomsFetcher := fetcher.New(fetcher.Config[[]room.Room]{
		Name:        "rooms",
		Fetch:       api.ListRooms,
		CurrentHome: homes.CurrentID,
		Changes:     changes,
	})
	roomsFetcher.SetLogger(log)
	roomsFetcher.Start(ctx)
	defer roomsFetcher.Stop()

	homes.LoadHomes(ctx)

	if opts.homeID != 0 {
		if err := homes.SwitchHome(ctx, opts.homeID); err != nil {
			return fmt.Errorf("switching home: %w", err)
		}
	}

	current := homes.Current()
	if current == nil {
		fmt.Printf("Logged in as %s. No homes yet.\n", user.Email)
		return nil
	}
	log.Info("home selected", "home_id", current.ID, "name", current.Name, "role", current.Role)

	// Wait for the in-flight room fetch before printing.
	roomsFetcher.Wait()
	if fetchErr := roomsFetcher.Err(); fetchErr != nil {
		log.Warn("room fetch failed", "home_id", current.ID, "error", fetchErr)
	}

	if opts.toggle != 0 {
		lights := room.NewLights(api, roomsFetcher)
		lights.SetLogger(log)
		if err := lights.Toggle(ctx, opts.toggle); err != nil {
			return fmt.Errorf("toggling light in room %d: %w", opts.toggle, err)
		}
		log.Info("light toggled", "room_id", opts.toggle)
	}

	printSummary(*user, homes, roomsFetcher.Data())

	log.Info("iotdash stopped")
	return nil
}

// printSummary writes the dashboard snapshot to stdout.
func printSummary(user session.User, homes *home.Registry, rooms []room.Room) {
	current := homes.Current()

	fmt.Printf("Logged in as %s (%s)\n", user.Email, user.Username)
	fmt.Printf("Homes (%d):\n", len(homes.Homes()))
	for _, h := range homes.Homes() {
		marker := " "
		if h.ID == current.ID {
			marker = "*"
		}
		fmt.Printf("  %s %d  %-20s %s\n", marker, h.ID, h.Name, h.Role)
	}

	fmt.Printf("Rooms in %s (%d):\n", current.Name, len(rooms))
	for _, r := range rooms {
		light := "off"
		if r.Telemetry.LightOn {
			light = "on"
		}
		line := fmt.Sprintf("  %d  %-20s light %s", r.ID, r.Name, light)
		if r.Telemetry.Temperature != nil {
			line += fmt.Sprintf("  %.1f°C", *r.Telemetry.Temperature)
		}
		if r.Telemetry.Humidity != nil {
			line += fmt.Sprintf("  %.0f%%RH", *r.Telemetry.Humidity)
		}
		fmt.Println(line)
	}

	if alerts := room.DeriveAlerts(rooms); len(alerts) > 0 {
		fmt.Printf("Alerts (%d):\n", len(alerts))
		for _, a := range alerts {
			fmt.Printf("  [%s] %s\n", a.Kind, a.Message)
		}
	}
}

// getConfigPath returns the configuration file path.
// Uses IOTDASH_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("IOTDASH_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
