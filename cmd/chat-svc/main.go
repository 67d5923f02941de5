package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
	"chatapp/internal/di"
	"chatapp/internal/push"
)

func main() {
	log.Println("Starting Chat Service...")

	app, err := di.InitializeChatApplication()
	if err != nil {
		log.Fatalf("❌ Failed to initialize chat service: %v", err)
	}

	if err := dbmysql.Migrate(app.DB); err != nil {
		log.Fatalf("❌ Failed to migrate database: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Live pushes flow manager -> websocket observer -> hub.
	app.Pushes.Subscribe(push.NewWebSocketObserver(app.Hub))
	go app.Hub.Run()

	router := mux.NewRouter()
	router.Use(common.LoggingMiddleware)

	app.UserHandler.RegisterPublicRoutes(router)

	authed := router.NewRoute().Subrouter()
	authed.Use(common.AuthMiddleware)
	app.UserHandler.RegisterRoutes(authed)
	app.ChatHandler.RegisterRoutes(authed)
	authed.HandleFunc("/ws", app.Hub.ServeWS).Methods("GET")

	server := &http.Server{
		Addr:         ":" + app.Config.Server.ChatServicePort,
		Handler:      router,
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(app.Config.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Chat Service running on port %s", app.Config.Server.ChatServicePort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Chat Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
	}

	app.Hub.Shutdown()
	app.Pushes.Shutdown()

	if err := app.Redis.Close(); err != nil {
		log.Printf("❌ Redis close error: %v", err)
	}

	log.Println("✅ Chat Service stopped")
}
