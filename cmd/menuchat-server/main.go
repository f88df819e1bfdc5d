package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"menuchat-backend/internal/config"
	"menuchat-backend/internal/server"
)

func main() {
	cfg := config.Load()
	s, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
		os.Exit(1)
	}
	addr := ":" + cfg.Port
	fmt.Printf("menuchat server listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
