package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/money-movements/pkg/config"
	"github.com/chris/money-movements/pkg/reminders"
	dydbstore "github.com/chris/money-movements/pkg/storage/dynamodb"
	"github.com/chris/money-movements/pkg/websockets"
)

var notifier *reminders.Notifier

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.MovementsTableName == "" || cfg.ConnectionsTableName == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}
	if cfg.WebsocketAPIEndpoint == "" {
		log.Fatal("WEBSOCKET_API_ENDPOINT environment variable not set")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Invalid TIMEZONE: %v", err)
	}
	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.MovementsTableName, cfg.UsersTableName, cfg.ConnectionsTableName)
	store.Location = loc
	publisher, err := websockets.NewAPIGatewayPublisher(context.TODO(), store, store, cfg.WebsocketAPIEndpoint)
	if err != nil {
		log.Fatalf("Failed to create websocket publisher: %v", err)
	}
	notifier = reminders.NewNotifier(store, publisher)
}

func main() {
	lambda.Start(notifier.HandleSQSEvent)
}
