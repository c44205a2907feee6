package main

import (
	"log"

	"device-hub/confs"
	"device-hub/db"
	"device-hub/server"
)

func main() {
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	srv := server.NewServer(database, cfg)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
