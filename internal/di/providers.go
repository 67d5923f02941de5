package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"chatapp/internal/chat/handler"
	"chatapp/internal/config"
	"chatapp/internal/dbmongo"
	"chatapp/internal/media"
	"chatapp/internal/presence"
	"chatapp/internal/push"
	"chatapp/internal/user"
	"chatapp/internal/ws"
)

// Application bundles everything the chat service binary needs.
type Application struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Presence    *presence.RedisPresence
	Hub         *ws.Hub
	Pushes      *push.Manager
	ChatHandler *handler.ChatHandler
	UserHandler *user.Handler
}

// MediaApplication bundles the media server binary's dependencies.
type MediaApplication struct {
	Config *config.Config
	DB     *gorm.DB
	Mongo  *dbmongo.MongoClient
	Server *media.HTTPServer
}

func ProvideManager(cnf *config.Config) *push.Manager {
	return push.NewManager(cnf.Push.Workers, cnf.Push.ChannelBufferSize)
}
