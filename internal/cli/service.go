package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/eagl/console/internal/app"
	"github.com/eagl/console/pkg/consoleapi"
	"github.com/spf13/cobra"
)

// Build information. Populated at build time via -ldflags.
var (
	Commit    = "none"
	BuildDate = "unknown"
)

func (r *runner) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, and build date of eagl.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "eagl %s\n", app.BuildVersion)
			fmt.Fprintf(w, "  Commit:     %s\n", Commit)
			fmt.Fprintf(w, "  Built:      %s\n", BuildDate)
			fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func (r *runner) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.application(cmd.Context())
			if err != nil {
				return err
			}

			h, err := consoleapi.CheckHealth(cmd.Context(), a.API)
			if err != nil {
				return fmt.Errorf("api %s is unhealthy: %w", a.API.Base(), err)
			}

			return r.render(cmd.OutOrStdout(), h, func(w io.Writer) error {
				return writeFields(w, []field{
					{"API", a.API.Base()},
					{"OK", strconv.FormatBool(h.OK)},
					{"Version", h.Version},
					{"Env", h.Env},
				})
			})
		},
	}
}

type resolvedConfig struct {
	APIBase     string  `json:"apiBase" yaml:"apiBase"`
	Environment string  `json:"environment,omitempty" yaml:"environment,omitempty"`
	Runtime     string  `json:"runtimeConfig,omitempty" yaml:"runtimeConfig,omitempty"`
	Store       string  `json:"store" yaml:"store"`
	StorePath   string  `json:"storePath,omitempty" yaml:"storePath,omitempty"`
	Sealed      bool    `json:"sealed" yaml:"sealed"`
	HTTPTimeout string  `json:"httpTimeout" yaml:"httpTimeout"`
	RateLimit   float64 `json:"rateLimit" yaml:"rateLimit"`
	SoftRefresh bool    `json:"softRefresh" yaml:"softRefresh"`
	LogLevel    string  `json:"logLevel" yaml:"logLevel"`
}

func (r *runner) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `config prints the configuration eagl runs with after the environment,
the .env file, flags and the runtime config document were applied. Key
material is never printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.application(cmd.Context())
			if err != nil {
				return err
			}

			c := a.Config
			rc := resolvedConfig{
				APIBase:     a.API.Base(),
				Environment: a.Runtime.Environment,
				Runtime:     c.RuntimeConfig,
				Store:       c.Store,
				StorePath:   c.StorePath,
				Sealed:      c.Sealed(),
				HTTPTimeout: c.HTTPTimeout.String(),
				RateLimit:   c.RateLimit,
				SoftRefresh: c.SoftRefresh,
				LogLevel:    c.LogLevel,
			}

			return r.render(cmd.OutOrStdout(), rc, func(w io.Writer) error {
				return writeFields(w, []field{
					{"API", rc.APIBase},
					{"Environment", rc.Environment},
					{"Runtime config", rc.Runtime},
					{"Store", rc.Store},
					{"Store path", rc.StorePath},
					{"Sealed", strconv.FormatBool(rc.Sealed)},
					{"HTTP timeout", rc.HTTPTimeout},
					{"Rate limit", strconv.FormatFloat(rc.RateLimit, 'g', -1, 64) + "/s"},
					{"Soft refresh", strconv.FormatBool(rc.SoftRefresh)},
					{"Log level", rc.LogLevel},
				})
			})
		},
	}
}
