package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"shopfeed/internal/modkit"
	"shopfeed/internal/modkit/module"
	"shopfeed/internal/platform/config"
	"shopfeed/internal/platform/logger"
	"shopfeed/internal/platform/store"

	importermod "shopfeed/internal/services/importer/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()
	st, err := store.Open(context.Background(), store.Config{
		AppName: "shopfeed-import",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	var (
		fCSV    = flag.String("csv", "", "path to the scraper CSV export")
		fScale  = flag.Int("scale", 0, "image scale factor override (0 = configured default)")
		fChrome = flag.String("chrome", "", "websocket URL of an external Chrome (empty = launch local)")
	)
	flag.Parse()

	csvPath := *fCSV
	if csvPath == "" && flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	if csvPath == "" {
		l.Panic().Msg("must provide -csv or a positional CSV path")
	}

	// Surface flag overrides to the module's FromConfig
	if *fScale > 0 {
		mustSetEnv("CORE_IMPORT_SCALE_FACTOR", strconv.Itoa(*fScale))
	}
	mustSetEnv("CORE_IMPORT_CHROME_URL", *fChrome)

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	imp := importermod.New(deps)
	module.Register(imp.Name(), imp.Ports())
	defer func() {
		if err := imp.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close browser")
		}
	}()

	ports := imp.Ports().(importermod.Ports)
	sum, err := ports.Runner.Run(context.Background(), csvPath)
	if err != nil {
		l.Fatal().Err(err).Msg("import failed")
	}
	l.Info().
		Int("rows", sum.Rows).
		Int("imported", sum.Imported).
		Int("duplicates", sum.Duplicates).
		Int("failed", sum.Failed).
		Msg("import complete")
}
