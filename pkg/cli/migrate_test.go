package cli_test

import (
	"testing"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskscope/pkg/cli"
)

func TestIndexConfig(t *testing.T) {
	t.Run("without prefix", func(t *testing.T) {
		cfg := cli.IndexConfig("")
		gt.Array(t, cfg.Collections).Length(1)
		gt.Value(t, cfg.Collections[0].Name).Equal("risks")

		fields := cfg.Collections[0].Indexes[0].Fields
		gt.Array(t, fields).Length(2)
		gt.Value(t, fields[0]).Equal(fireconf.IndexField{Path: "category_id", Order: fireconf.OrderAscending})
		gt.Value(t, fields[1]).Equal(fireconf.IndexField{Path: "updated_at", Order: fireconf.OrderDescending})
	})

	t.Run("with prefix", func(t *testing.T) {
		cfg := cli.IndexConfig("staging")
		gt.Value(t, cfg.Collections[0].Name).Equal("staging_risks")
	})
}

func TestMigrationDatabaseID(t *testing.T) {
	gt.Value(t, cli.MigrationDatabaseID("")).Equal("(default)")
	gt.Value(t, cli.MigrationDatabaseID("risks-db")).Equal("risks-db")
}
