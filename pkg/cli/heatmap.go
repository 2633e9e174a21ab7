package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/secmon-lab/riskscope/pkg/cli/config"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskscope/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

const heatmapCellWidth = 12

func cmdHeatmap() *cli.Command {
	var method string
	var appCfg config.AppConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "method",
			Aliases:     []string{"m"},
			Usage:       "Scoring method (multiplication or coordinate), overrides the configuration file",
			Destination: &method,
		},
	}
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "heatmap",
		Aliases: []string{"hm"},
		Usage:   "Print the 5x5 risk matrix",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := scoringConfiguration(&appCfg, method)
			if err != nil {
				return err
			}
			// empty without --config; the axes then show bare ratings
			riskCfg := appCfg.ToDomainRiskConfig()

			printHeatmap(c.Root().Writer, model.BuildHeatmap(cfg), riskCfg)
			return nil
		},
	}
}

func printHeatmap(w io.Writer, hm *model.Heatmap, riskCfg *domainConfig.RiskConfig) {
	axisWidth := heatmapCellWidth
	for score := 1; score <= len(hm.Rows); score++ {
		axisWidth = max(axisWidth, utf8.RuneCountInString(axisLabel(score, riskCfg.LikelihoodName(score))))
	}

	_, _ = fmt.Fprintf(w, "%-*s", axisWidth, "likelihood")
	for _, cell := range hm.Rows[0] {
		_, _ = fmt.Fprintf(w, " %-*s", heatmapCellWidth, truncate(axisLabel(cell.Impact, riskCfg.ImpactName(cell.Impact)), heatmapCellWidth))
	}
	_, _ = fmt.Fprintln(w)

	for _, row := range hm.Rows {
		_, _ = fmt.Fprintf(w, "%-*s", axisWidth, axisLabel(row[0].Likelihood, riskCfg.LikelihoodName(row[0].Likelihood)))
		for _, cell := range row {
			text := fmt.Sprintf("%2d %s", cell.Result.Score, cell.Result.LevelLabel)
			text = fmt.Sprintf("%-*s", heatmapCellWidth, truncate(text, heatmapCellWidth))
			_, _ = fmt.Fprintf(w, " %s", bandColor(cell.Result.Color).Sprint(text))
		}
		_, _ = fmt.Fprintln(w)
	}

	_, _ = fmt.Fprintf(w, "%*s\n", axisWidth+len(hm.Rows[0])*(heatmapCellWidth+1), "impact")
}

func axisLabel(score int, name string) string {
	if name == "" {
		return fmt.Sprintf("%d", score)
	}
	return fmt.Sprintf("%d %s", score, name)
}

// truncate shortens s to n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n]))
}
