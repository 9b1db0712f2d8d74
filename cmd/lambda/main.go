package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	_ "github.com/joho/godotenv/autoload"

	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/container"
)

var adapter *chiadapter.ChiLambda

func init() {
	settings, err := config.Load()
	if err != nil {
		panic(err)
	}
	c, err := container.New(context.Background(), settings)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to build container")
	}
	adapter = chiadapter.New(c.Router())
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return adapter.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
