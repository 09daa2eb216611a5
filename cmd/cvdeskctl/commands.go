package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/export"
	"github.com/artem13815/cvdesk/pkg/storage/postgres"
)

func newMigrateCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or inspect database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}
			pool, err := env.open(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			if err := postgres.Migrate(cmd.Context(), pool, direction); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("migrate "+direction+": done"))
			return nil
		},
	}
}

func newQuotaCmd(env *environment) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Read or change a user's CV limit",
	}
	cmd.PersistentFlags().StringVarP(&user, "user", "u", "", "user id or email")

	get := &cobra.Command{
		Use:   "get",
		Short: "Show a user's limit and usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.services(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			id, err := svc.resolveUser(cmd.Context(), user)
			if err != nil {
				return err
			}
			info, err := svc.quotas.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderQuota(info))
			return nil
		},
	}

	var max int
	set := &cobra.Command{
		Use:   "set",
		Short: "Change a user's limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.services(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			id, err := svc.resolveUser(cmd.Context(), user)
			if err != nil {
				return err
			}
			info, err := svc.quotas.Set(cmd.Context(), id, max)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderQuota(info))
			return nil
		},
	}
	set.Flags().IntVar(&max, "max", 0, "new maximum number of CVs")
	_ = set.MarkFlagRequired("max")

	cmd.AddCommand(get, set)
	return cmd
}

func newStatsCmd(env *environment) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print a user's dashboard figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.services(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			id, err := svc.resolveUser(cmd.Context(), user)
			if err != nil {
				return err
			}
			stats, err := svc.dashboard.Stats(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderStats(stats))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "user id or email")
	return cmd
}

func newFacetsCmd(env *environment) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Print the tags and skills found in a user's library",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.services(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			id, err := svc.resolveUser(cmd.Context(), user)
			if err != nil {
				return err
			}
			facets, err := svc.library.Facets(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderFacets(facets))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "user id or email")
	return cmd
}

func newExportCmd(env *environment) *cobra.Command {
	var (
		user, out string
		crit      cv.Criteria
		sort      string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a user's (filtered) library to an XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !strings.HasSuffix(strings.ToLower(out), ".xlsx") {
				out += ".xlsx"
			}
			svc, err := env.services(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			id, err := svc.resolveUser(cmd.Context(), user)
			if err != nil {
				return err
			}
			f, err := os.Create(filepath.Clean(out))
			if err != nil {
				return err
			}
			defer f.Close()
			crit.Sort = string(cv.ParseSort(sort))
			if err := export.NewService(svc.library, svc.dashboard).Export(cmd.Context(), id, crit, f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), labelStyle.Render("written "+out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "user id or email")
	cmd.Flags().StringVarP(&out, "out", "o", "cvs.xlsx", "output file")
	cmd.Flags().StringVar(&crit.Q, "q", "", "substring of file name or text")
	cmd.Flags().StringVar(&crit.Tag, "tag", "", "tag name")
	cmd.Flags().StringVar(&crit.Skill, "skill", "", "skill name")
	cmd.Flags().StringVar(&crit.Experience, "experience", "", "years: min-max, min or min+")
	cmd.Flags().StringVar(&sort, "sort", "newest", "newest | oldest | name_az | name_za")
	return cmd
}

func newUserCmd(env *environment) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage users"}
	var revoke bool
	promote := &cobra.Command{
		Use:   "admin <id|email>",
		Short: "Grant (or with --revoke, remove) admin rights",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := env.services(cmd.Context())
			if err != nil {
				return err
			}
			defer env.close()
			id, err := svc.resolveUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := svc.users.SetAdmin(cmd.Context(), id, !revoke); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s admin=%t\n", labelStyle.Render("updated"), id, !revoke)
			return nil
		},
	}
	promote.Flags().BoolVar(&revoke, "revoke", false, "remove admin rights")
	cmd.AddCommand(promote)
	return cmd
}
