package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/beout/beout-admin/pkg/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *mockProducer) Close() {}

func TestKafkaPublisher_Publish(t *testing.T) {
	tests := []struct {
		name    string
		job     *PushJob
		wantKey string
		err     error
	}{
		{
			name:    "keyed by user",
			job:     &PushJob{MessageID: "m-1", UserID: "usr-1", TemplateKey: "event_reminder", Language: "fr"},
			wantKey: "usr-1",
		},
		{
			name:    "keyed by message without user",
			job:     &PushJob{MessageID: "m-2", TemplateKey: "event_reminder", Language: "en"},
			wantKey: "m-2",
		},
		{
			name:    "broker error",
			job:     &PushJob{MessageID: "m-3", TemplateKey: "x", Language: "en"},
			wantKey: "m-3",
			err:     errors.New("no leader"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			producer := new(mockProducer)
			producer.On("Publish", mock.Anything, mock.MatchedBy(func(msg kafka.Message) bool {
				return msg.Topic == "push.notifications" && msg.Key == tt.wantKey &&
					msg.Headers["template_key"] == tt.job.TemplateKey && msg.Value == tt.job
			})).Return(tt.err)

			p, err := NewKafkaPublisher(producer, "push.notifications")
			require.NoError(t, err)

			err = p.Publish(context.Background(), tt.job)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				assert.NoError(t, err)
			}
			producer.AssertExpectations(t)
		})
	}
}

func TestNewKafkaPublisher_Validation(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "topic")
	assert.Error(t, err)

	_, err = NewKafkaPublisher(new(mockProducer), "")
	assert.Error(t, err)
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher()
	require.NoError(t, p.Publish(context.Background(), &PushJob{MessageID: "m-1"}))
	assert.Len(t, p.Jobs(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, &PushJob{}), context.Canceled)
}
