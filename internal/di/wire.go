//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	chathandler "chatapp/internal/chat/handler"
	chatrepo "chatapp/internal/chat/repository"
	chatservice "chatapp/internal/chat/service"
	"chatapp/internal/common"
	"chatapp/internal/config"
	"chatapp/internal/dbmongo"
	"chatapp/internal/dbmysql"
	"chatapp/internal/delivery"
	deliveryrepo "chatapp/internal/delivery/repository"
	"chatapp/internal/media"
	"chatapp/internal/presence"
	"chatapp/internal/push"
	"chatapp/internal/user"
	"chatapp/internal/ws"
)

// InitializeChatApplication builds the full chat service object graph.
func InitializeChatApplication() (*Application, error) {
	wire.Build(
		config.LoadConfig,
		dbmysql.NewMySQL,
		presence.NewRedisClient,
		presence.NewRedisPresence,
		wire.Bind(new(common.PresenceRegistry), new(*presence.RedisPresence)),
		wire.Bind(new(common.PresenceOracle), new(*presence.RedisPresence)),
		ws.NewHub,
		ProvideManager,
		wire.Bind(new(common.Subject), new(*push.Manager)),
		chatrepo.NewChatRepository,
		chatrepo.NewConversationRepository,
		wire.Bind(new(delivery.ParticipantSource), new(chatrepo.ConversationRepository)),
		deliveryrepo.NewDeliveryRepository,
		delivery.NewTracker,
		delivery.NewFanout,
		delivery.NewQueryService,
		chatservice.NewChatService,
		chathandler.NewChatHandler,
		user.NewUserRepository,
		user.NewUserService,
		user.NewHandler,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}

// InitializeMediaApplication builds the media server object graph.
func InitializeMediaApplication() (*MediaApplication, error) {
	wire.Build(
		config.LoadConfig,
		dbmysql.NewMySQL,
		dbmongo.NewMongoConnection,
		media.NewHTTPServer,
		wire.Struct(new(MediaApplication), "*"),
	)
	return &MediaApplication{}, nil
}
