package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/money-movements/pkg/config"
	"github.com/chris/money-movements/pkg/reminders"
	"github.com/chris/money-movements/pkg/scheduler"
	dydbstore "github.com/chris/money-movements/pkg/storage/dynamodb"
)

var sweeper *reminders.Sweeper

func init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.SQSQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL environment variable not set")
	}
	if cfg.MovementsTableName == "" {
		log.Fatal("DYNAMODB_MOVEMENTS_TABLE_NAME environment variable not set")
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
	sqsScheduler := scheduler.NewSQSScheduler(sqs.NewFromConfig(awsCfg), cfg.SQSQueueURL)
	sweeper = reminders.NewSweeper(store, sqsScheduler, cfg.ReminderWindow)
}

// HandleRequest is triggered by an EventBridge Schedule.
func HandleRequest(ctx context.Context) error {
	_, err := sweeper.Sweep(ctx)
	return err
}

func main() {
	lambda.Start(HandleRequest)
}
