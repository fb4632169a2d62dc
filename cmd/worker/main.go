package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"edustore-service/config"
	"edustore-service/internal/database"
	"edustore-service/internal/worker"
)

func main() {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	cfg := config.Load()
	db := database.Connect(cfg)
	sender := worker.NewMailSender(cfg)

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, db, sender)
}
