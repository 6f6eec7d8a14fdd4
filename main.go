package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Speshl/gorrc_tx/internal/app"
	"github.com/Speshl/gorrc_tx/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagSim       bool
	flagStoreDir  string
	flagCalibrate bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gortx",
		Short: "gortx - RC transmitter menu and channel calculator",
		Long: `gortx samples the sticks and buttons of a pi based transmitter, drives
its character display and keeps model settings on disk.

Hardware drivers are chosen with GORTX_ environment variables.
Use --sim to run on a terminal with keyboard input and simulated sticks.`,
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&flagSim, "sim", false, "Run against the terminal simulator instead of hardware")
	rootCmd.Flags().StringVar(&flagStoreDir, "store-dir", "", "Directory holding global and model settings")
	rootCmd.Flags().BoolVar(&flagCalibrate, "calibrate", false, "Enter stick calibration on startup")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	if flagSim {
		cfg.ApplySim()
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed opening log file: %w", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	if flagStoreDir != "" {
		cfg.StoreCfg.StoreDriver = "file"
		cfg.StoreCfg.Dir = flagStoreDir
	} else if flagSim {
		cfg.StoreCfg.StoreDriver = "memory"
	}
	cfg.Calibrate = flagCalibrate

	transmitter, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("error creating transmitter - %w", err)
	}

	err = transmitter.Start(cmd.Context())
	if err != nil {
		log.Printf("transmitter shutdown with error: %s", err.Error())
		return err
	}
	log.Println("transmitter shutdown successfully")
	return nil
}
