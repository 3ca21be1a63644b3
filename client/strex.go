package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListMerchantIDs lists the Strex merchants of the account.
func (c *Client) ListMerchantIDs(ctx context.Context) ([]StrexMerchantID, error) {
	var merchants []StrexMerchantID
	if err := c.getJSON(ctx, "api/strex/merchants", nil, &merchants); err != nil {
		return nil, err
	}

	return merchants, nil
}

// GetMerchantID returns a Strex merchant, or ErrNotFound.
func (c *Client) GetMerchantID(ctx context.Context, merchantID string) (*StrexMerchantID, error) {
	var v validator
	v.notBlank("merchantId", merchantID)
	if err := v.err(); err != nil {
		return nil, err
	}

	var merchant StrexMerchantID
	if err := c.getResource(ctx, "api/strex/merchants/"+segment(merchantID), nil, &merchant); err != nil {
		return nil, err
	}

	return &merchant, nil
}

// CreateOneTimePassword sends a Strex one-time password to the recipient.
func (c *Client) CreateOneTimePassword(ctx context.Context, otp *StrexOneTimePassword) error {
	var v validator
	v.notNil("oneTimePassword", otp == nil)
	if otp != nil {
		v.notBlank("oneTimePassword.transactionId", otp.TransactionID)
		v.notBlank("oneTimePassword.merchantId", otp.MerchantID)
		v.notBlank("oneTimePassword.recipient", otp.Recipient)
	}
	if err := v.err(); err != nil {
		return err
	}

	_, err := c.create(ctx, "api/strex/one-time-passwords", otp)
	return err
}

// GetOneTimePassword returns a one-time password request, or ErrNotFound.
func (c *Client) GetOneTimePassword(ctx context.Context, transactionID string) (*StrexOneTimePassword, error) {
	var v validator
	v.notBlank("transactionId", transactionID)
	if err := v.err(); err != nil {
		return nil, err
	}

	var otp StrexOneTimePassword
	if err := c.getResource(ctx, "api/strex/one-time-passwords/"+segment(transactionID), nil, &otp); err != nil {
		return nil, err
	}

	return &otp, nil
}

// CreateStrexTransaction starts a Strex payment. Zero Timeout and
// DeliveryMode are sent as their defaults.
func (c *Client) CreateStrexTransaction(ctx context.Context, transaction *StrexTransaction) error {
	var v validator
	v.notNil("transaction", transaction == nil)
	if transaction != nil {
		v.notBlank("transaction.transactionId", transaction.TransactionID)
		v.notBlank("transaction.merchantId", transaction.MerchantID)
		v.notBlank("transaction.serviceCode", transaction.ServiceCode)
		v.notBlank("transaction.invoiceText", transaction.InvoiceText)
		v.notBlank("transaction.shortNumber", transaction.ShortNumber)
	}
	if err := v.err(); err != nil {
		return err
	}

	t := transaction.withDefaults()

	_, err := c.create(ctx, "api/strex/transactions", &t)
	return err
}

// GetStrexTransaction returns a Strex transaction, or ErrNotFound.
func (c *Client) GetStrexTransaction(ctx context.Context, transactionID string) (*StrexTransaction, error) {
	var v validator
	v.notBlank("transactionId", transactionID)
	if err := v.err(); err != nil {
		return nil, err
	}

	var transaction StrexTransaction
	if err := c.getResource(ctx, "api/strex/transactions/"+segment(transactionID), nil, &transaction); err != nil {
		return nil, err
	}

	return &transaction, nil
}

// ReverseStrexTransaction reverses a completed Strex payment and returns the
// id of the reversal transaction.
func (c *Client) ReverseStrexTransaction(ctx context.Context, transactionID string) (string, error) {
	var v validator
	v.notBlank("transactionId", transactionID)
	if err := v.err(); err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodDelete, "api/strex/transactions/"+segment(transactionID), nil, nil, http.StatusCreated)
	if err != nil {
		return "", err
	}

	return locationID(resp.header), nil
}

// SaveOneClickConfig creates or replaces the one-click config identified by
// config.ConfigID. A zero Timeout is sent as DefaultStrexTimeout.
func (c *Client) SaveOneClickConfig(ctx context.Context, config *OneClickConfig) error {
	var v validator
	v.notNil("config", config == nil)
	if config != nil {
		v.notBlank("config.configId", config.ConfigID)
		v.notBlank("config.shortNumber", config.ShortNumber)
		v.notBlank("config.merchantId", config.MerchantID)
		v.notBlank("config.serviceCode", config.ServiceCode)
		v.notBlank("config.invoiceText", config.InvoiceText)
		v.notBlank("config.redirectUrl", config.RedirectURL)
	}
	if err := v.err(); err != nil {
		return err
	}

	cfg := config.withDefaults()

	return c.send(ctx, http.MethodPut, "api/one-click/configs/"+segment(cfg.ConfigID), &cfg, http.StatusCreated)
}

// GetOneClickConfig returns a one-click config, or ErrNotFound.
func (c *Client) GetOneClickConfig(ctx context.Context, configID string) (*OneClickConfig, error) {
	var v validator
	v.notBlank("configId", configID)
	if err := v.err(); err != nil {
		return nil, err
	}

	var config OneClickConfig
	if err := c.getResource(ctx, "api/one-click/configs/"+segment(configID), nil, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// GetUserValidity returns the Strex registration level of recipient,
// optionally scoped to merchantID.
func (c *Client) GetUserValidity(ctx context.Context, recipient, merchantID string) (UserValidity, error) {
	var v validator
	v.notBlank("recipient", recipient)
	if err := v.err(); err != nil {
		return "", err
	}

	query := url.Values{"recipient": {recipient}}
	if merchantID != "" {
		query.Set("merchantId", merchantID)
	}

	var validity UserValidity
	if err := c.getResource(ctx, "api/strex/validity", query, &validity); err != nil {
		return "", err
	}

	return validity, nil
}
