package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func RegisterFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.StringP("source", "s", ".", "Image source directory")
	flags.Int("delay", 3, "Seconds before the next image is shown")
	flags.Bool("verbose", false, "Enable verbose output")
	flags.String("icon", "icon.png", "Window icon")
	flags.BoolP("background", "b", false, "Detach from the terminal and log to a file")
	flags.String("log-file", "", "Log file used in background mode (default is ~/.local/share/smoothshow/smoothshow.log)")
	flags.Int("screen-width", 0, "Override the detected screen width in pixels")
	flags.Int("screen-height", 0, "Override the detected screen height in pixels")

	flags.Bool("show-config", false, "Dump resolved config")
	flags.BoolP("version", "v", false, "Print version")

	for key, flag := range map[string]string{
		"source":        "source",
		"delay":         "delay",
		"verbose":       "verbose",
		"icon":          "icon",
		"background":    "background",
		"log_file":      "log-file",
		"screen_width":  "screen-width",
		"screen_height": "screen-height",
	} {
		viper.BindPFlag(key, flags.Lookup(flag))
	}
}
