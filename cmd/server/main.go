package main

import (
	"log"

	"slimevolley/config"
	"slimevolley/game"
	"slimevolley/network"
	"slimevolley/room"
)

func main() {
	config.InitConfig()

	tun, err := game.LoadTuning(config.TuningPath())
	if err != nil {
		log.Fatal("tuning: ", err)
	}

	mgr := room.NewManager(tun)
	srv := network.NewServer(mgr)
	log.Fatal(srv.Serve(config.Addr()))
}
