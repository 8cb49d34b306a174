package pushsvc

import (
	"context"
	"fmt"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/dailysutra/core/notification"
)

type fakeClient struct {
	batches []*messaging.MulticastMessage
	failed  map[string]bool
	err     error
}

func (c *fakeClient) SendEachForMulticast(_ context.Context, msg *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.batches = append(c.batches, msg)
	res := &messaging.BatchResponse{}
	for _, tok := range msg.Tokens {
		if c.failed[tok] {
			res.FailureCount++
			res.Responses = append(res.Responses, &messaging.SendResponse{Error: errors.New("unavailable")})
		} else {
			res.SuccessCount++
			res.Responses = append(res.Responses, &messaging.SendResponse{Success: true, MessageID: "m-" + tok})
		}
	}
	return res, nil
}

func TestFCMSenderSend(t *testing.T) {
	tokens := make([]string, 0, 501)
	for i := 0; i < 501; i++ {
		tokens = append(tokens, fmt.Sprintf("tok-%d", i))
	}
	client := &fakeClient{failed: map[string]bool{"tok-7": true}}
	sender := newFCMSenderWithClient(client)

	msg := notification.Message{Title: "Daily Sutra", Body: "Time for your daily practice", Data: map[string]string{"day": "12"}}
	errs, err := sender.Send(context.Background(), tokens, msg)
	require.NoError(t, err)
	require.Len(t, errs, 501)

	require.Len(t, client.batches, 2)
	assert.Len(t, client.batches[0].Tokens, 500)
	assert.Equal(t, []string{"tok-500"}, client.batches[1].Tokens)
	assert.Equal(t, "Daily Sutra", client.batches[0].Notification.Title)
	assert.Equal(t, "12", client.batches[0].Data["day"])

	for i, e := range errs {
		if i == 7 {
			assert.Error(t, e)
			assert.NotEqual(t, notification.ErrInvalidToken, errors.Cause(e))
		} else {
			assert.NoError(t, e)
		}
	}
}

func TestFCMSenderSendFailure(t *testing.T) {
	sender := newFCMSenderWithClient(&fakeClient{err: errors.New("unauthenticated")})
	_, err := sender.Send(context.Background(), []string{"tok"}, notification.Message{})
	assert.Error(t, err)
}

func TestConsoleSenderMock(t *testing.T) {
	sender := NewConsoleSenderMock("stale")
	errs, err := sender.Send(context.Background(), []string{"fresh", "stale"}, notification.Message{Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.NoError(t, errs[0])
	assert.Equal(t, notification.ErrInvalidToken, errs[1])

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "fresh", sent[0].Token)
}
