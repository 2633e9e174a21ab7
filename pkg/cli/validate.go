package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/cli/config"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/usecase"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
	"github.com/secmon-lab/riskscope/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var checkDB bool

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "check-db",
		Usage:       "Check stored risks and the saved scoring configuration against the configuration file",
		Destination: &checkDB,
	})
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the configuration file and optionally check DB consistency",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if appCfg.Path() == "" {
				return goerr.Wrap(config.ErrConfigNotFound, "--config is required")
			}

			// Step 1: Load and validate the configuration file
			riskCfg, seed, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"categories", len(riskCfg.Categories),
				"likelihood_levels", len(riskCfg.Likelihood),
				"impact_levels", len(riskCfg.Impact),
				"teams", len(riskCfg.Teams),
			)

			if seed != nil {
				logBandIssues(ctx, seed.Diagnose(), "configuration file")
			}

			// Step 2: Check stored data only when requested
			if !checkDB {
				logger.Info("DB consistency check not requested, skipping")
				return nil
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo, usecase.WithRiskConfig(riskCfg))
			validationResult, err := uc.ValidateDB(ctx)
			if err != nil {
				return goerr.Wrap(err, "DB consistency check failed")
			}

			logBandIssues(ctx, validationResult.BandIssues, "stored scoring configuration")

			if validationResult.HasIssues() {
				for _, issue := range validationResult.Issues {
					logger.Warn("DB consistency issue found",
						"risk_id", issue.RiskID,
						"field", issue.Field,
						"message", issue.Message,
						"expected", issue.Expected,
						"actual", issue.Actual,
					)
				}

				return goerr.New("DB consistency check found issues",
					goerr.V("issue_count", len(validationResult.Issues)))
			}

			logger.Info("DB consistency check passed")
			return nil
		},
	}
}

// logBandIssues reports gaps and overlaps. They do not fail validation:
// uncovered scores classify as Unknown and overlaps resolve to the first band.
func logBandIssues(ctx context.Context, issues []model.BandIssue, source string) {
	for _, issue := range issues {
		logging.From(ctx).Warn("Scoring band issue",
			"source", source,
			"kind", string(issue.Kind),
			"message", issue.Message(),
		)
	}
}
