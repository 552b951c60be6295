package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalescer(t *testing.T) {
	tests := []struct {
		name      string
		in        []Event
		wantTopic string
		wantID    int64
	}{
		{
			name:      "single event passes through",
			in:        []Event{{Topic: TopicPartners, PartnerID: 7}},
			wantTopic: TopicPartners,
			wantID:    7,
		},
		{
			name:      "same partner keeps id",
			in:        []Event{{Topic: TopicPartners, PartnerID: 7}, {Topic: TopicPartners, PartnerID: 7}},
			wantTopic: TopicPartners,
			wantID:    7,
		},
		{
			name:      "different partners drop id",
			in:        []Event{{Topic: TopicPartners, PartnerID: 1}, {Topic: TopicPartners, PartnerID: 2}},
			wantTopic: TopicPartners,
		},
		{
			name:   "mixed topics widen to all",
			in:     []Event{{Topic: TopicPartners, PartnerID: 1}, {Topic: "stages", PartnerID: 1}},
			wantID: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b coalescer
			for _, e := range tt.in {
				b.add(e)
			}
			got, ok := b.take()
			assert.True(t, ok)
			assert.Equal(t, tt.wantTopic, got.Topic)
			assert.Equal(t, tt.wantID, got.PartnerID)

			_, ok = b.take()
			assert.False(t, ok, "take should reset")
		})
	}
}
