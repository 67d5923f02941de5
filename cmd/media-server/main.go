package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chatapp/internal/dbmysql"
	"chatapp/internal/di"
)

func main() {
	log.Println("Starting Media Server...")

	app, err := di.InitializeMediaApplication()
	if err != nil {
		log.Fatalf("❌ Failed to initialize media server: %v", err)
	}

	if err := dbmysql.Migrate(app.DB); err != nil {
		log.Fatalf("❌ Failed to migrate database: %v", err)
	}

	server := &http.Server{
		Addr:         ":" + app.Config.Server.MediaServicePort,
		Handler:      app.Server,
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Media Server running on port %s", app.Config.Server.MediaServicePort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Media Server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
	}

	if err := app.Mongo.Close(ctx); err != nil {
		log.Printf("❌ Mongo close error: %v", err)
	}

	log.Println("✅ Media Server stopped")
}
