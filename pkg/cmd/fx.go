package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(execCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(shellCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(versionCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
