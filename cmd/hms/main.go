package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hospital-management/cmd/bootstrap"
	"hospital-management/config"
	"hospital-management/internal/seeder"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hms",
		Short:         "Hospital management portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("%v", err)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			app, err := bootstrap.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return app.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	for _, direction := range []string{"up", "down"} {
		short := "Apply all pending migrations"
		if direction == "down" {
			short = "Roll back the latest migration"
		}
		cmd.AddCommand(&cobra.Command{
			Use:   direction,
			Short: short,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.LoadConfig()
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				return bootstrap.Migrate(cfg, direction)
			},
		})
	}

	return cmd
}

func seedCmd() *cobra.Command {
	opts := seeder.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := bootstrap.Seed(ctx, cfg, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Doctors: %d (%d new)\n", result.Doctors, result.DoctorsCreated)
			fmt.Fprintf(out, "Patients: %d\n", result.Patients)
			fmt.Fprintf(out, "Appointments: %d\n", result.Appointments)
			fmt.Fprintf(out, "Bills: %d\n", result.Bills)
			fmt.Fprintf(out, "Admin login: %s / %s\n", seeder.AdminUsername, seeder.AdminPassword)
			fmt.Fprintf(out, "Doctor login: doctor1..doctor%d / %s\n", opts.Doctors, seeder.DoctorPassword)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.Doctors, "doctors", opts.Doctors, "number of doctor accounts")
	flags.IntVar(&opts.Patients, "patients", opts.Patients, "number of patients to create")
	flags.IntVar(&opts.PatientsWithAppointments, "with-appointments", opts.PatientsWithAppointments, "patients that get 1-3 appointments")
	flags.IntVar(&opts.PatientsWithBills, "with-bills", opts.PatientsWithBills, "patients that get 1-5 bills")
	flags.Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed, 0 for a random run")

	return cmd
}
