package config

import (
	"os"

	"github.com/pseudomuto/cmdreg/pkg/consts"
	"github.com/pseudomuto/cmdreg/pkg/utils"
	"go.uber.org/fx"
)

// Module provides the *Config loaded from $CMDREG_CONFIG, or cmdreg.yaml in the
// working directory. Commands accepting --config reload it when the flag is set.
var Module = fx.Module("config", fx.Provide(
	func() (*Config, error) {
		return Load(utils.Coalesce(os.Getenv(consts.ConfigFileEnv), consts.DefaultConfigFile))
	},
))
