package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var collectionPrefix string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("RISKSCOPE_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("RISKSCOPE_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.StringFlag{
				Name:        "firestore-collection-prefix",
				Usage:       "Prefix for Firestore collection names",
				Sources:     cli.EnvVars("RISKSCOPE_FIRESTORE_COLLECTION_PREFIX"),
				Destination: &collectionPrefix,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"collectionPrefix", collectionPrefix,
				"dryRun", dryRun)

			client, err := fireconf.New(ctx, projectID, migrationDatabaseID(databaseID),
				indexConfig(collectionPrefix),
				fireconf.WithDryRun(dryRun),
				fireconf.WithLogger(logger),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
			} else {
				logger.Info("Applying migrations")
			}
			if err := client.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}
			if dryRun {
				logger.Info("Dry run completed")
				return nil
			}
			logger.Info("Migrations applied successfully")
			return nil
		},
	}
}

// migrationDatabaseID maps an empty --firestore-database-id to the default
// database, which fireconf requires by name
func migrationDatabaseID(databaseID string) string {
	if databaseID == "" {
		return "(default)"
	}
	return databaseID
}

// indexConfig returns the composite indexes the Firestore repository queries need
func indexConfig(prefix string) *fireconf.Config {
	name := func(collection string) string {
		if prefix != "" {
			return prefix + "_" + collection
		}
		return collection
	}

	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: name("risks"),
				Indexes: []fireconf.Index{
					// ListByCategory: category_id ASC, updated_at DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "category_id", Order: fireconf.OrderAscending},
							{Path: "updated_at", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
