package config

import (
	"flag"
	"os"
	"time"

	"github.com/Sidrek1992/decretos-cft-new-proyect-sub000/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-pa string   records endpoint for administrative leave
//	-fl string   records endpoint for statutory vacation
//	-emp string  employees roster endpoint
//	-s string    spreadsheet id
//	-t string    bearer token
//	-b string    sqlite DSN of the local backup store
//	-i int       online check interval in seconds (default from Config)
//	-validate    ask the remote to validate rows on push
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-pa", "-fl", "-emp", "-s", "-t", "-b", "-i", "-validate"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RecordsEndpointPA, "pa", cfg.RecordsEndpointPA, "records endpoint for administrative leave")
	fs.StringVar(&cfg.RecordsEndpointFL, "fl", cfg.RecordsEndpointFL, "records endpoint for statutory vacation")
	fs.StringVar(&cfg.EmployeesEndpoint, "emp", cfg.EmployeesEndpoint, "employees roster endpoint")
	fs.StringVar(&cfg.SheetID, "s", cfg.SheetID, "spreadsheet id")
	fs.StringVar(&cfg.BearerToken, "t", cfg.BearerToken, "bearer token")
	fs.StringVar(&cfg.BackupDSN, "b", cfg.BackupDSN, "sqlite DSN of the local backup store")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.BoolVar(&cfg.ValidatePush, "validate", cfg.ValidatePush, "ask the remote to validate rows on push")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
