// curtaincall wires the game core for a pass-and-play device: durable
// sqlite storage, persisted settings driving the rank rules, and the
// session that views attach to.
package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/a2m-m/CurtainCall-sub000/engine"
	"github.com/a2m-m/CurtainCall-sub000/internal/persist"
	"github.com/a2m-m/CurtainCall-sub000/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logrus.New()
	if lvl, err := logrus.ParseLevel(os.Getenv("CURTAINCALL_LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
	log := logrus.NewEntry(logger)

	dataDir := os.Getenv("CURTAINCALL_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	storage, err := persist.NewSQLiteStorage(filepath.Join(dataDir, "curtaincall.db"))
	if err != nil {
		log.WithError(err).Fatal("open storage")
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.WithError(err).Warn("close storage")
		}
	}()

	settings := persist.NewSettingsStore(storage, log).Load()
	rules := engine.NewRules()
	persist.ApplyRankRule(settings, rules, log)

	sess := session.New(session.Options{
		Storage:     storage,
		Log:         log,
		Rules:       rules,
		PlayerNames: settings.Players,
	})
	if meta := sess.SaveMetadata(); meta != nil {
		log.WithFields(logrus.Fields{
			"phase": meta.Phase,
			"turn":  meta.Turn,
		}).Info("resumable match found")
	}
	log.WithField("rule", rules.Active()).Info("session ready")

	// The session is event-driven; views dispatch into it. Hold the
	// process open until interrupted.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")
}
