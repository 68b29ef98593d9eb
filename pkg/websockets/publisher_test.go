package websockets

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwtypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/chris/money-movements/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnections struct {
	ids     []string
	err     error
	removed []string
}

func (f *fakeConnections) GetConnectionsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	return f.ids, f.err
}

func (f *fakeConnections) AddConnection(ctx context.Context, conn models.Connection) error {
	return nil
}

func (f *fakeConnections) RemoveConnection(ctx context.Context, connectionID string) error {
	f.removed = append(f.removed, connectionID)
	return nil
}

type fakeAPIGateway struct {
	posted map[string][]byte
	gone   map[string]bool
}

func (f *fakeAPIGateway) PostToConnection(ctx context.Context, params *apigatewaymanagementapi.PostToConnectionInput, optFns ...func(*apigatewaymanagementapi.Options)) (*apigatewaymanagementapi.PostToConnectionOutput, error) {
	id := aws.ToString(params.ConnectionId)
	if f.gone[id] {
		return nil, &apigwtypes.GoneException{}
	}
	if f.posted == nil {
		f.posted = make(map[string][]byte)
	}
	f.posted[id] = params.Data
	return &apigatewaymanagementapi.PostToConnectionOutput{}, nil
}

func TestAPIGatewayPublisher(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		conns := &fakeConnections{ids: []string{"c1", "c2"}}
		client := &fakeAPIGateway{gone: map[string]bool{"c2": true}}
		publisher := NewAPIGatewayPublisherWithClient(conns, conns, client)

		err := publisher.Publish(context.Background(), Message{
			Type:    MessageTypeThemeChanged,
			OwnerID: "owner-1",
			Payload: ThemeChangedPayload{Dark: true},
		})

		require.NoError(t, err)
		require.Contains(t, client.posted, "c1")
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(client.posted["c1"], &decoded))
		assert.Equal(t, "themeChanged", decoded["type"])
		assert.NotContains(t, decoded, "OwnerID")
		assert.Equal(t, []string{"c2"}, conns.removed)
	})

	t.Run("Storage Error", func(t *testing.T) {
		conns := &fakeConnections{err: errors.New("query failed")}
		publisher := NewAPIGatewayPublisherWithClient(conns, conns, &fakeAPIGateway{})

		err := publisher.Publish(context.Background(), Message{OwnerID: "owner-1"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get owner connections")
	})
}

func TestMultiPublisher(t *testing.T) {
	hub := NewHub(1)
	sub := hub.Subscribe("owner-1")
	defer sub.Close()

	err := MultiPublisher{&NoOpPublisher{}, hub}.Publish(context.Background(), Message{OwnerID: "owner-1"})

	assert.NoError(t, err)
	assert.Len(t, sub.C(), 1)
}
