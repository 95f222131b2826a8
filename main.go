package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"os"

	"ghost_maze_server/config"
	"ghost_maze_server/logging"
	"ghost_maze_server/logic"
	"ghost_maze_server/network"
	"ghost_maze_server/observability"
	"ghost_maze_server/storage"

	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "config.toml", "server config path")
	flag.Parse()

	srvCfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		logging.Init("info")
		log.Fatal().Err(err).Msg("failed to load server config")
	}
	logging.Init(srvCfg.LogLevel)

	gameCfg := loadGameConfig(srvCfg.GameConfigPath)
	logic.ClampGameConfig(gameCfg)

	if err := storage.InitDB(srvCfg.DBPath); err != nil {
		log.Fatal().Err(err).Msg("failed to init storage")
	}
	if best, err := storage.BestScore(); err == nil && best > 0 {
		log.Info().Int("best_score", best).Msg("previous best score loaded")
	}
	observability.RegisterMetrics()

	manager := network.NewRoomManager()
	room := manager.CreateRoom("alpha_1", gameCfg, wireHooks)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		network.ServeWs(room, w, r)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(manager.ListRooms())
	})
	mux.Handle("/metrics", observability.Handler())

	log.Info().Str("addr", srvCfg.Addr).Msg("ghost maze server listening")
	if err := http.ListenAndServe(srvCfg.Addr, mux); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func loadGameConfig(path string) *logic.GameConfig {
	cfg := logic.DefaultGameConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("no game config found, using defaults")
		return cfg
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to parse game config")
	}
	return cfg
}

// wireHooks connects simulation events to persistence and metrics.
func wireHooks(room *network.Room) {
	gs := room.GameLoop.GameState
	gs.OnRoundEnd = func(res logic.RoundResult) {
		storage.SaveRound(res)
		observability.RecordRound(res.Won)
	}
	gs.OnMetaEvent = func(tick uint64, kind string) {
		storage.SaveMetaEvent(tick, kind)
		observability.RecordMetaEvent(kind)
	}
	room.GameLoop.OnTick = func(uint64) {
		observability.RecordTick()
	}
}
