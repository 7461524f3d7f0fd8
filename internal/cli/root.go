/*
Copyright © 2025 Nathan Ollerenshaw <chrome@stupendous.net>
*/
package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/matjam/smoothshow"
	"github.com/matjam/smoothshow/internal/catalog"
	"github.com/matjam/smoothshow/internal/cli/cmd"
	"github.com/matjam/smoothshow/internal/cli/cmd/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smoothshow",
	Short: "A fullscreen image slideshow",
	Long: `Smoothshow finds every jpg, png and gif below a directory and shows
them fullscreen in random order, one after another.

Press Escape to quit.`,
	Args: cobra.NoArgs,
	Run: func(command *cobra.Command, args []string) {
		if v, err := command.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
		yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
		if v, err := command.Flags().GetBool("version"); err == nil && v {
			log.Infof("%v version %v © 2025 %v",
				babyBlue.Render("smoothshow "),
				green.Render(strings.Trim(smoothshow.Version, "\n\r ")),
				yellow.Render("Nathan Ollerenshaw"))
			return
		}

		cfg, err := LoadConfig()
		if err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		cmd.SetupLogging(cfg)
		err = cmd.StartSlideshow(cfg)
		if errors.Is(err, catalog.ErrEmpty) {
			log.Fatalf("No images found in %s", cfg.Source)
		}
		if err != nil {
			log.Fatalf("Error reading source directory: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	RegisterFlags(rootCmd)
}
