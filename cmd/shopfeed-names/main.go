// shopfeed-names dumps the imported vendor names as JSON, the same snapshot
// the import dedup gate reads before a batch
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"shopfeed/internal/modkit"
	"shopfeed/internal/modkit/module"
	"shopfeed/internal/platform/config"
	"shopfeed/internal/platform/logger"
	"shopfeed/internal/platform/store"

	importermod "shopfeed/internal/services/importer/module"
)

func main() {
	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()
	st, err := store.Open(context.Background(), store.Config{
		AppName: "shopfeed-names",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
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

	fOut := flag.String("out", "", "write JSON to this file instead of stdout")
	flag.Parse()

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	imp := importermod.New(deps)
	module.Register(imp.Name(), imp.Ports())
	defer func() { _ = imp.Close() }()

	ports := imp.Ports().(importermod.Ports)
	names, err := ports.Names.Names(context.Background())
	if err != nil {
		l.Fatal().Err(err).Msg("listing vendor names failed")
	}

	out, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		l.Fatal().Err(err).Msg("encoding names failed")
	}
	out = append(out, '\n')

	if *fOut != "" {
		if err := os.WriteFile(*fOut, out, 0o644); err != nil {
			l.Fatal().Err(err).Msg("writing names file failed")
		}
		l.Info().Int("count", len(names)).Str("file", *fOut).Msg("names written")
		return
	}
	if _, err := os.Stdout.Write(out); err != nil {
		l.Fatal().Err(err).Msg("writing names failed")
	}
}
