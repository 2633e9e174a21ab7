package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/cli/config"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

type scoreOutput struct {
	Likelihood int    `json:"likelihood"`
	Impact     int    `json:"impact"`
	Method     string `json:"method"`
	Score      int    `json:"score"`
	Level      string `json:"level"`
	Color      string `json:"color"`
}

func cmdScore() *cli.Command {
	var likelihood int
	var impact int
	var method string
	var asJSON bool
	var appCfg config.AppConfig

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "likelihood",
			Aliases:     []string{"L"},
			Usage:       "Likelihood rating (1-5, out of range values are clamped)",
			Required:    true,
			Destination: &likelihood,
		},
		&cli.IntFlag{
			Name:        "impact",
			Aliases:     []string{"I"},
			Usage:       "Impact rating (1-5, out of range values are clamped)",
			Required:    true,
			Destination: &impact,
		},
		&cli.StringFlag{
			Name:        "method",
			Aliases:     []string{"m"},
			Usage:       "Scoring method (multiplication or coordinate), overrides the configuration file",
			Destination: &method,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the result as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:  "score",
		Usage: "Score a likelihood/impact pair",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := scoringConfiguration(&appCfg, method)
			if err != nil {
				return err
			}

			result := model.Score(likelihood, impact, cfg)
			out := scoreOutput{
				Likelihood: types.ClampRating(likelihood),
				Impact:     types.ClampRating(impact),
				Method:     cfg.Method.Normalize().String(),
				Score:      result.Score,
				Level:      result.LevelLabel,
				Color:      result.Color,
			}

			w := c.Root().Writer
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(out); err != nil {
					return goerr.Wrap(err, "failed to encode result")
				}
				return nil
			}

			swatch := bandColor(result.Color).Sprint("  ")
			_, _ = fmt.Fprintf(w, "likelihood: %d\nimpact:     %d\nmethod:     %s\nscore:      %d\nlevel:      %s %s\ncolor:      %s\n",
				out.Likelihood, out.Impact, out.Method, out.Score, swatch, out.Level, out.Color)
			return nil
		},
	}
}

// scoringConfiguration builds the configuration used by the offline
// commands: the [scoring] section of --config (or the defaults), with the
// method optionally overridden.
func scoringConfiguration(appCfg *config.AppConfig, method string) (*model.ScoringConfiguration, error) {
	_, seed, err := appCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load configuration")
	}

	cfg := seed
	if cfg == nil {
		cfg = model.DefaultScoringConfiguration()
	}

	if method != "" {
		m, err := types.ParseScoringMethod(method)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid --method")
		}
		cfg.Method = m
	}

	return cfg, nil
}

// bandColor returns a background color for a #rrggbb band color
func bandColor(hex string) *color.Color {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.New(color.BgWhite)
	}
	return color.BgRGB(r, g, b)
}
