package cli

import (
	"strings"

	"github.com/matjam/smoothshow/internal/cli/cmd/utils"
	"github.com/matjam/smoothshow/internal/types"
	"github.com/spf13/viper"
)

const AppName = "smoothshow"

func initConfig() {
	setDefaults()

	// every setting can be overridden from the environment, e.g. SMOOTHSHOW_DELAY
	viper.SetEnvPrefix(AppName)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func setDefaults() {
	viper.SetDefault("source", ".")
	viper.SetDefault("delay", 3)
	viper.SetDefault("verbose", false)
	viper.SetDefault("icon", "icon.png")
	viper.SetDefault("background", false)
	viper.SetDefault("log_file", utils.DefaultLogFile())
	viper.SetDefault("screen_width", 0)
	viper.SetDefault("screen_height", 0)
}

// LoadConfig resolves the slideshow configuration from flags, environment and
// defaults.
func LoadConfig() (*types.Config, error) {
	logFile := viper.GetString("log_file")
	if logFile == "" {
		logFile = utils.DefaultLogFile()
	}

	cfg := &types.Config{
		AppName:      AppName,
		Source:       utils.CanonicalPath(viper.GetString("source")),
		Delay:        viper.GetInt("delay"),
		Verbose:      viper.GetBool("verbose"),
		Icon:         utils.CanonicalPath(viper.GetString("icon")),
		Background:   viper.GetBool("background"),
		LogFile:      utils.CanonicalPath(logFile),
		ScreenWidth:  viper.GetInt("screen_width"),
		ScreenHeight: viper.GetInt("screen_height"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
