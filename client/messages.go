package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// AddressLookup looks up name and address details for msisdn.
func (c *Client) AddressLookup(ctx context.Context, msisdn string) (*LookupResult, error) {
	var v validator
	v.notBlank("msisdn", msisdn)
	if err := v.err(); err != nil {
		return nil, err
	}

	var result LookupResult
	if err := c.getJSON(ctx, "api/lookup", url.Values{"msisdn": {msisdn}}, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// PrepareMsisdns asks Target365 to warm up operator lookups for msisdns
// ahead of a send.
func (c *Client) PrepareMsisdns(ctx context.Context, msisdns []string) error {
	var v validator
	v.notEmpty("msisdns", len(msisdns))
	v.noBlanks("msisdns", msisdns)
	if err := v.err(); err != nil {
		return err
	}

	return c.send(ctx, http.MethodPost, "api/prepare-msisdns", msisdns, http.StatusNoContent)
}

// CreateOutMessage sends an SMS and returns its transaction id. Zero
// TimeToLive, Priority and DeliveryMode are sent as their defaults.
func (c *Client) CreateOutMessage(ctx context.Context, message *OutMessage) (string, error) {
	if err := validateOutMessage("outMessage", message); err != nil {
		return "", err
	}

	m := message.withDefaults()

	return c.create(ctx, "api/out-messages", &m)
}

// CreateOutMessageBatch sends several SMS in one call and returns the
// transaction ids of the items in order.
func (c *Client) CreateOutMessageBatch(ctx context.Context, messages []*OutMessage) ([]string, error) {
	var v validator
	v.notEmpty("items", len(messages))
	if err := v.err(); err != nil {
		return nil, err
	}

	items := make([]OutMessage, 0, len(messages))
	for i, message := range messages {
		if err := validateOutMessage(fmt.Sprintf("items[%d]", i), message); err != nil {
			return nil, err
		}

		items = append(items, message.withDefaults())
	}

	if _, err := c.create(ctx, "api/out-messages/batch", items); err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.TransactionID
	}

	return ids, nil
}

// GetOutMessage returns the out-message with transactionID, or ErrNotFound.
func (c *Client) GetOutMessage(ctx context.Context, transactionID string) (*OutMessage, error) {
	var v validator
	v.notBlank("transactionId", transactionID)
	if err := v.err(); err != nil {
		return nil, err
	}

	var message OutMessage
	if err := c.getResource(ctx, "api/out-messages/"+segment(transactionID), nil, &message); err != nil {
		return nil, err
	}

	return &message, nil
}

// UpdateOutMessage replaces a scheduled out-message.
func (c *Client) UpdateOutMessage(ctx context.Context, message *OutMessage) error {
	if err := validateOutMessage("outMessage", message); err != nil {
		return err
	}

	var v validator
	v.notBlank("outMessage.transactionId", message.TransactionID)
	if err := v.err(); err != nil {
		return err
	}

	m := message.withDefaults()

	return c.send(ctx, http.MethodPut, "api/out-messages/"+segment(message.TransactionID), &m, http.StatusNoContent)
}

// DeleteOutMessage cancels a scheduled out-message.
func (c *Client) DeleteOutMessage(ctx context.Context, transactionID string) error {
	var v validator
	v.notBlank("transactionId", transactionID)
	if err := v.err(); err != nil {
		return err
	}

	return c.send(ctx, http.MethodDelete, "api/out-messages/"+segment(transactionID), nil, http.StatusNoContent)
}

// ExportOutMessages returns the out-messages created between from and to as
// CSV text, unparsed.
func (c *Client) ExportOutMessages(ctx context.Context, from, to time.Time) (string, error) {
	var v validator
	v.notZeroTime("from", from)
	v.notZeroTime("to", to)
	if err := v.err(); err != nil {
		return "", err
	}

	query := url.Values{
		"from": {from.UTC().Format(time.RFC3339Nano)},
		"to":   {to.UTC().Format(time.RFC3339Nano)},
	}

	resp, err := c.do(ctx, http.MethodGet, "api/export/out-messages", query, nil, http.StatusOK)
	if err != nil {
		return "", err
	}

	return string(resp.body), nil
}

// GetInMessage returns an inbound message, or ErrNotFound.
func (c *Client) GetInMessage(ctx context.Context, shortNumberID, transactionID string) (*InMessage, error) {
	var v validator
	v.notBlank("shortNumberId", shortNumberID)
	v.notBlank("transactionId", transactionID)
	if err := v.err(); err != nil {
		return nil, err
	}

	var message InMessage
	if err := c.getResource(ctx, "api/in-messages/"+segment(shortNumberID)+"/"+segment(transactionID), nil, &message); err != nil {
		return nil, err
	}

	return &message, nil
}

func validateOutMessage(field string, message *OutMessage) error {
	var v validator
	v.notNil(field, message == nil)
	if message != nil {
		v.notBlank(field+".sender", message.Sender)
		v.notBlank(field+".recipient", message.Recipient)
		v.notBlank(field+".content", message.Content)
		if message.TimeToLive != 0 {
			v.between(field+".timeToLive", message.TimeToLive, MinTimeToLive, MaxTimeToLive)
		}
		if message.Strex != nil {
			validateStrexData(&v, field+".strex", message.Strex)
		}
	}

	return v.err()
}

func validateStrexData(v *validator, field string, data *StrexData) {
	v.notBlank(field+".merchantId", data.MerchantID)
	v.notBlank(field+".serviceCode", data.ServiceCode)
	v.notBlank(field+".invoiceText", data.InvoiceText)
}
