//go:build wireinject

package main

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dogechoco/messageboard/core"
	"github.com/dogechoco/messageboard/x/admin"
	"github.com/dogechoco/messageboard/x/message"
	"github.com/dogechoco/messageboard/x/socket"
)

var socketServiceProvider = wire.NewSet(socket.NewService)
var messageServiceProvider = wire.NewSet(message.NewService, message.NewRepository, socketServiceProvider)
var adminServiceProvider = wire.NewSet(admin.NewService, message.NewRepository)

func SetupSocketService(rdb *redis.Client) core.SocketService {
	wire.Build(socketServiceProvider)
	return nil
}

func SetupMessageService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) core.MessageService {
	wire.Build(messageServiceProvider)
	return nil
}

func SetupAdminService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config core.Config) core.AdminService {
	wire.Build(adminServiceProvider)
	return nil
}
