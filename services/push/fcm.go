// Package pushsvc delivers push messages to devices.
package pushsvc

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/notification"
)

// maxMulticastTokens is the FCM limit of tokens per multicast message.
const maxMulticastTokens = 500

// multicastClient abstracts the FCM client for testability.
type multicastClient interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type fcmSender struct {
	client multicastClient
}

var _ notification.Sender = (*fcmSender)(nil)

// NewFCMSender authenticates with the service account of conf against Firebase Cloud Messaging.
func NewFCMSender(ctx context.Context, conf *core.Config) (notification.Sender, error) {
	if conf.Notification.FirebaseServiceAccount == "" {
		return nil, errors.New("missing firebase service account")
	}
	opt := option.WithCredentialsJSON([]byte(conf.Notification.FirebaseServiceAccount))
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase app")
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase messaging")
	}
	return &fcmSender{client: client}, nil
}

func newFCMSenderWithClient(client multicastClient) *fcmSender {
	return &fcmSender{client: client}
}

func (s *fcmSender) Send(ctx context.Context, tokens []string, msg notification.Message) ([]error, error) {
	errs := make([]error, 0, len(tokens))
	for start := 0; start < len(tokens); start += maxMulticastTokens {
		end := start + maxMulticastTokens
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[start:end]

		res, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens:       batch,
			Notification: &messaging.Notification{Title: msg.Title, Body: msg.Body},
			Data:         msg.Data,
		})
		if err != nil {
			return nil, errors.Wrap(err, "sending multicast message")
		}
		for i := range batch {
			if i >= len(res.Responses) || res.Responses[i] == nil {
				errs = append(errs, errors.New("no response for token"))
				continue
			}
			errs = append(errs, tokenError(res.Responses[i]))
		}
	}
	return errs, nil
}

func tokenError(res *messaging.SendResponse) error {
	if res.Success {
		return nil
	}
	if res.Error != nil && (messaging.IsUnregistered(res.Error) || messaging.IsInvalidArgument(res.Error)) {
		return errors.Wrap(notification.ErrInvalidToken, res.Error.Error())
	}
	if res.Error == nil {
		return errors.New("push message not delivered")
	}
	return res.Error
}
