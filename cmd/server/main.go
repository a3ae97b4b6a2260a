package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"tankarena/internal/api"
	"tankarena/internal/config"
	"tankarena/internal/engine"
	"tankarena/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables only")
	}

	log.Println("================================")
	log.Println(" TANK ARENA - GAME SERVER")
	log.Println("================================")

	cfg := config.Load()
	log.Printf("arena %gx%g, %d TPS, %d max players", cfg.Arena.Width, cfg.Arena.Height, cfg.Server.TickRate, cfg.Limits.MaxPlayers)

	eng := engine.New(cfg)
	hub := session.NewHub(eng)

	eng.OnTick(api.RecordTick)
	eng.Scheduler().On(engine.Static, func(nowMs float64) {
		counts := eng.CountsUnlocked()
		api.UpdatePlayerCount(counts.Players)
		api.UpdateShellCount(counts.Shells)
		api.UpdateUpgradeCount(counts.Upgrades)
		api.UpdateSkippedFrames(eng.SkippedFramesUnlocked())
	})

	server := api.NewServer(eng, hub)

	eng.Start()
	defer eng.Stop()

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		if err := server.Start(addr); err != nil {
			log.Fatalf("api: server failed: %v", err)
		}
	}()
	log.Printf("listening on %s (ws at %s/ws)", addr, addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("shutting down")
	server.Stop()
}
