package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogSender_Send(t *testing.T) {
	s := NewLogSender()

	err := s.Send(context.Background(), "shopper@example.com", "Order confirmed", "Thanks for your order")

	assert.NoError(t, err)
}
