package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/ghrepo/internal/usecase"
)

func validateCmd(a *app, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration, remotes and project metadata (no network)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.resolveConfig(cmd, *f)
			if err != nil {
				return err
			}

			uc := usecase.NewValidate(cfg, a.vcs(), a.metadata(cfg))
			rep, err := uc.Execute(cmd.Context(), usecase.RunInput{Name: f.name, Description: f.desc})
			if err != nil {
				return err
			}
			return a.printReport(rep)
		},
	}
}
