package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/ghrepo/internal/infra/inifile"
	"github.com/aalvaropc/ghrepo/internal/usecase"
)

func initCmd(a *app) *cobra.Command {
	var global bool
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .ghrepo.ini",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			dir := a.workDir
			if global {
				if a.homeDir == "" {
					return fmt.Errorf("home directory unknown; run init without --global")
				}
				dir = a.homeDir
			}

			existed := fileExists(filepath.Join(dir, inifile.FileName))

			// Only a project-local config can end up in a commit.
			uc := usecase.NewInitConfig(inifile.NewInitializer(!global))
			path, err := uc.Execute(dir, force)
			if err != nil {
				return err
			}

			if existed && !force {
				fmt.Fprintf(a.out, "kept existing %s (use --force to overwrite)\n", path)
				return nil
			}
			fmt.Fprintf(a.out, "wrote %s\n", path)
			return nil
		},
	}

	c.Flags().BoolVar(&global, "global", false, "write to $HOME instead of the working directory")
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return c
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
