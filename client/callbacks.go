package client

import (
	"fmt"

	"github.com/goccy/go-json"
)

// ParseInMessage decodes an in-message callback body.
func ParseInMessage(data []byte) (*InMessage, error) {
	var message InMessage
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("client: decode in-message: %w", err)
	}

	return &message, nil
}

// ParseDeliveryReport decodes a delivery report callback body.
func ParseDeliveryReport(data []byte) (*DeliveryReport, error) {
	var report DeliveryReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("client: decode delivery report: %w", err)
	}

	return &report, nil
}
