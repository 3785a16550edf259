package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ghuser/organcare/pkg/app"
	"github.com/ghuser/organcare/pkg/cache"
	"github.com/ghuser/organcare/pkg/config"
	"github.com/ghuser/organcare/pkg/logger"
	"github.com/ghuser/organcare/pkg/migrator"
	organSvcs "github.com/ghuser/organcare/services/organ/application/services"
	"github.com/ghuser/organcare/services/organ/domain/models"
	"github.com/ghuser/organcare/services/organ/infrastructure/persistence"
)

// Output formats accepted by --output.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var errSyncDisabled = errors.New("cloud sync is disabled; set CLOUD_SYNC_DRIVER")

type cli struct {
	loadConfig func() (*config.Config, error)
	output     string
}

func newRootCmd(load func() (*config.Config, error)) *cobra.Command {
	c := &cli{loadConfig: load}

	rootCmd := &cobra.Command{
		Use:   "organctl",
		Short: "Inspect and maintain organ maintenance records",
		Long: `organctl reads the state the api process keeps in STORAGE_DRIVER and
prints pending organs and the deletion log. It also pushes or pulls the cloud
copy and applies the SQL migrations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			switch c.output {
			case outputTable, outputJSON, outputYAML:
				return nil
			}
			return fmt.Errorf("unknown output format %q", c.output)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", outputTable, "output format: table, json or yaml")

	rootCmd.AddCommand(
		c.pendingCmd(),
		c.locationsCmd(),
		c.tombstonesCmd(),
		c.summaryCmd(),
		c.syncCmd(),
		c.migrateCmd(),
	)
	return rootCmd
}

func (c *cli) pendingCmd() *cobra.Command {
	var adm string
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List organs overdue for maintenance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filter models.Administration
			if adm != "" {
				parsed, err := models.ParseAdministration(adm)
				if err != nil {
					return err
				}
				filter = parsed
			}
			return c.withServices(cmd, func(svcs *organSvcs.Services) error {
				rows := []organSvcs.OrganStatus{}
				for _, st := range svcs.Status.Pending() {
					if filter == "" || st.Adm == filter {
						rows = append(rows, st)
					}
				}
				return c.render(cmd.OutOrStdout(), rows, func(tw io.Writer) {
					fmt.Fprintln(tw, "ID\tADM\tLOCATION\tMODEL\tLAST MAINTENANCE")
					for _, st := range rows {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", st.ID, st.Adm, st.LocationName, st.Model, lastMaintenance(st))
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&adm, "adm", "", "only organs of this administration")
	return cmd
}

func (c *cli) locationsCmd() *cobra.Command {
	var term string
	cmd := &cobra.Command{
		Use:   "locations <administration>",
		Short: "List the locations of an administration with their status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adm, err := models.ParseAdministration(args[0])
			if err != nil {
				return err
			}
			return c.withServices(cmd, func(svcs *organSvcs.Services) error {
				rows := svcs.Status.Locations(adm, term)
				return c.render(cmd.OutOrStdout(), rows, func(tw io.Writer) {
					fmt.Fprintln(tw, "ID\tNAME\tORGANS\tPENDING")
					for _, l := range rows {
						fmt.Fprintf(tw, "%s\t%s\t%d\t%t\n", l.ID, l.Name, l.OrganCount, l.Pending)
					}
				})
			})
		},
	}
	cmd.Flags().StringVarP(&term, "query", "q", "", "case-insensitive name filter")
	return cmd
}

func (c *cli) tombstonesCmd() *cobra.Command {
	var typ string
	cmd := &cobra.Command{
		Use:     "tombstones",
		Aliases: []string{"deleted"},
		Short:   "Print the deletion log, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recordType := models.RecordType(typ)
			if typ != "" && !recordType.Valid() {
				return fmt.Errorf("type must be %q or %q (got %q)", models.RecordOrgan, models.RecordMaintenance, typ)
			}
			return c.withServices(cmd, func(svcs *organSvcs.Services) error {
				rows := svcs.Status.DeletedItems(recordType)
				return c.render(cmd.OutOrStdout(), rows, func(tw io.Writer) {
					fmt.Fprintln(tw, "ID\tTYPE\tDELETED AT\tLOCATION\tREASON")
					for _, d := range rows {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
							d.ID, d.Type, d.DeletedAt.Format("2006-01-02 15:04"), d.Metadata.LocationName, d.Reason)
					}
				})
			})
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "only tombstones of this record type (organ or maintenance)")
	return cmd
}

func (c *cli) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <organ-id>",
		Short: "Summarize the maintenance history of an organ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withServices(cmd, func(svcs *organSvcs.Services) error {
				text, err := svcs.Summary.Summarize(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			})
		},
	}
}

func (c *cli) syncCmd() *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the state to or from the cloud bucket",
	}

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Upload the stored state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withServices(cmd, func(svcs *organSvcs.Services) error {
				if !svcs.Sync.Enabled() {
					return errSyncDisabled
				}
				if err := svcs.Sync.Push(cmd.Context()); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "pushed")
				return err
			})
		},
	}

	pullCmd := &cobra.Command{
		Use:   "pull",
		Short: "Replace the stored state with the cloud copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withServices(cmd, func(svcs *organSvcs.Services) error {
				if !svcs.Sync.Enabled() {
					return errSyncDisabled
				}
				pulled, err := svcs.Sync.Pull(cmd.Context())
				if err != nil {
					return err
				}
				msg := "no cloud copy found"
				if pulled {
					msg = "pulled"
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
				return err
			})
		},
	}

	syncCmd.AddCommand(pushCmd, pullCmd)
	return syncCmd
}

func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations and print the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := c.setup(cmd)
			if err != nil {
				return err
			}
			if !persistence.NeedsDatabase(cfg.StorageDriver) {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "storage driver %s keeps no schema\n", cfg.StorageDriver)
				return err
			}

			db, err := persistence.OpenDatabase(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			dialect := migrator.DialectPostgres
			if cfg.StorageDriver == config.StorageSQLite {
				dialect = migrator.DialectSQLite
			}
			version, err := migrator.Version(db.DB(), dialect)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (%s)\n", version, cfg.StorageDriver)
			return err
		},
	}
}

// setup loads and validates the configuration. Logs go to stderr so they
// never mix with command output.
func (c *cli) setup(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

// withServices opens the configured storage, runs fn and releases every
// connection. No event bus is attached: the commands never mutate records.
func (c *cli) withServices(cmd *cobra.Command, fn func(*organSvcs.Services) error) error {
	cfg, log, err := c.setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a := &app.Application{Config: cfg, Logger: log}

	if persistence.NeedsDatabase(cfg.StorageDriver) {
		db, err := persistence.OpenDatabase(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		a.Db = db
	}

	if cfg.StorageDriver == config.StorageRedis {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close() //nolint:errcheck
		a.Redis = redisClient
	}

	svcs, err := organSvcs.New(ctx, a)
	if err != nil {
		return err
	}
	defer svcs.Close()

	return fn(svcs)
}

// render writes v in the selected format. table receives a tabwriter that is
// flushed afterwards.
func (c *cli) render(w io.Writer, v any, table func(io.Writer)) error {
	switch c.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		return writeYAML(w, v)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

// writeYAML encodes v with its JSON field names.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func lastMaintenance(st organSvcs.OrganStatus) string {
	if st.LastMaintenance == nil {
		return "never"
	}
	return st.LastMaintenance.Format("2006-01-02")
}
