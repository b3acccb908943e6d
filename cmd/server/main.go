package main

import (
	"log"
	"net/http"

	"github.com/lojf/kindernet/internal/config"
	"github.com/lojf/kindernet/internal/dashboard"
	"github.com/lojf/kindernet/internal/db"
	"github.com/lojf/kindernet/internal/models"
	"github.com/lojf/kindernet/internal/report"
	"github.com/lojf/kindernet/internal/seed"
	"github.com/lojf/kindernet/internal/web"
)

func main() {
	cfg := config.Load()
	loc := cfg.Location()

	if err := db.Init(cfg.DatabaseDSN); err != nil {
		log.Fatalf("db init: %v", err)
	}
	proj := report.NewProjector(db.Conn())

	env := dashboard.DefaultEnv()
	initial := models.NewState()
	if cfg.Seed {
		st, err := seed.Build(env, loc)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		initial = st
		log.Printf("seeded %d kindergartens, %d students", len(st.Kindergartens), len(st.Students))
	}
	if err := proj.Sync(initial); err != nil {
		log.Fatalf("initial report sync: %v", err)
	}
	proj.Attach()
	cfg.Debugf("report projection at version %d", initial.Version)

	store := dashboard.NewStore(initial, env, loc)
	r := web.Router(store, proj)

	log.Printf("kindernet dashboard listening on %s (tz %s)", cfg.Addr, loc)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
