package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/internal/bot"
	"github.com/keshon/styrobot/internal/config"
	"github.com/keshon/styrobot/internal/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	cfg.SetupLogging()

	router, err := bot.NewRouter(cfg, nil, log.StandardLogger(), nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := docs.UpdateReadme(router.Registry(), router.Prefix(), "README.md.tmpl", "README.md"); err != nil {
		log.Fatal(err)
	}
}
