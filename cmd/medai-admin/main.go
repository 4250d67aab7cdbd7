package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"MedAI_LandingSite/internal/cli"
	"MedAI_LandingSite/internal/config"
)

func main() {
	// DB_PATH 등은 .env에서도 읽음
	cfg := config.Load()

	cmd := cli.NewRootCommand()
	setDefault(cmd.PersistentFlags().Lookup("db"), cfg.Storage.DBPath)
	if clearCmd, _, err := cmd.Find([]string{"clear"}); err == nil {
		setDefault(clearCmd.Flags().Lookup("archive-dir"), cfg.Storage.ArchiveDir)
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}

func setDefault(f *pflag.Flag, value string) {
	if f == nil {
		return
	}
	_ = f.Value.Set(value)
	f.DefValue = value
}
