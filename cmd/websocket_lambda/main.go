package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/money-movements/pkg/auth"
	"github.com/chris/money-movements/pkg/config"
	"github.com/chris/money-movements/pkg/handlers/websockets"
	dydbstore "github.com/chris/money-movements/pkg/storage/dynamodb"
	"github.com/redis/go-redis/v9"
)

var handler *websockets.Handler

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.UsersTableName == "" || cfg.ConnectionsTableName == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}
	if cfg.RedisAddr == "" {
		log.Fatal("REDIS_ADDR environment variable not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.MovementsTableName, cfg.UsersTableName, cfg.ConnectionsTableName)
	sessions := auth.NewRedisSessionStore(redis.NewClient(cfg.RedisOptions()), cfg.SessionTTL)
	handler = websockets.NewHandler(store, auth.NewService(store, sessions))
}

func main() {
	lambda.Start(handler.Route)
}
