package helpers

import (
	"os"

	"github.com/mattn/go-isatty"

	"github.com/compozy/foodietour/engine/execution"
	"github.com/compozy/foodietour/pkg/config"
)

// isRunningInCI checks if we're running in a CI/CD environment
func isRunningInCI() bool {
	if os.Getenv("CI") != "" {
		return true
	}
	ciVars := []string{
		"JENKINS_HOME",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"BUILDKITE",
		"DRONE",
		"TF_BUILD",
		"BITBUCKET_COMMIT",
		"CODEBUILD_BUILD_ID",
		"TEAMCITY_VERSION",
		"CONTINUOUS_INTEGRATION",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func dumbTerminal() bool {
	term := os.Getenv("TERM")
	return term == "dumb" || term == ""
}

// IsInteractive reports whether prompts and spinners can be shown. The
// cli.interactive setting forces it on.
func IsInteractive(cfg *config.Config) bool {
	if cfg != nil && cfg.CLI.Interactive {
		return true
	}
	if isRunningInCI() {
		return false
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return false
	}
	return !dumbTerminal()
}

// ShouldUseColor determines if colored output should be used
func ShouldUseColor(cfg *config.Config) bool {
	if os.Getenv("NO_COLOR") != "" || isRunningInCI() {
		return false
	}
	if cfg != nil && cfg.CLI.Interactive {
		return true
	}
	return isTerminal(os.Stdout) && !dumbTerminal()
}

// ResolveFormat picks the report format from the cli.format setting. Auto
// always resolves to text so piped output keeps the plain report lines.
func ResolveFormat(cfg *config.Config) (execution.Format, error) {
	if cfg == nil {
		return execution.FormatText, nil
	}
	return execution.ParseFormat(cfg.CLI.Format)
}
