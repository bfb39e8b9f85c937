package integration_tests

import "github.com/specialistvlad/tuneit/internal/app"

func appConfig(input string) app.Config {
	return app.Config{InputPath: input}
}
