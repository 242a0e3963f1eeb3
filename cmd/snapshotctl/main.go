package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - validate: Check a CSV snapshot directory for integrity problems
// - inspect:  Print summary statistics for a CSV snapshot directory

func main() {
	// Subcommand definitions
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	inspectCmd := flag.NewFlagSet("inspect", flag.ExitOnError)

	// validate parameters
	validateDir := validateCmd.String("dir", "./data/snapshot", "Directory holding the CSV snapshot")

	// inspect parameters
	inspectDir := inspectCmd.String("dir", "./data/snapshot", "Directory holding the CSV snapshot")
	inspectPretty := inspectCmd.Bool("pretty", true, "Indent the JSON summary")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := snapshotFlags{
		Validate: validateFlags{
			cmd: validateCmd,
			dir: validateDir,
		},
		Inspect: inspectFlags{
			cmd:    inspectCmd,
			dir:    inspectDir,
			pretty: inspectPretty,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type snapshotFlags struct {
	Validate validateFlags
	Inspect  inspectFlags
}

type validateFlags struct {
	cmd *flag.FlagSet
	dir *string
}

type inspectFlags struct {
	cmd    *flag.FlagSet
	dir    *string
	pretty *bool
}

func runSubcommand(ctx context.Context, flags *snapshotFlags) error {
	switch os.Args[1] {
	case "validate":
		if err := flags.Validate.cmd.Parse(os.Args[2:]); err != nil {
			return errors.WithStack(err)
		}

		return runValidate(ctx, *flags.Validate.dir)
	case "inspect":
		if err := flags.Inspect.cmd.Parse(os.Args[2:]); err != nil {
			return errors.WithStack(err)
		}

		return runInspect(ctx, *flags.Inspect.dir, *flags.Inspect.pretty)
	default:
		printUsage()

		return errors.Errorf("unknown subcommand: %s", os.Args[1])
	}
}

func printUsage() {
	fmt.Println("Usage: snapshotctl <subcommand> [options]")
	fmt.Println()
	fmt.Println("Subcommands:")
	fmt.Println("  validate  Check a CSV snapshot directory for integrity problems")
	fmt.Println("  inspect   Print summary statistics for a CSV snapshot directory")
	fmt.Println()
	fmt.Println("Run 'snapshotctl <subcommand> -h' for subcommand options.")
}
