package client

import (
	"context"
	"net/http"
)

// GetServerPublicKey returns a Target365 server public key by name, or
// ErrNotFound. These keys sign callbacks sent to the client.
func (c *Client) GetServerPublicKey(ctx context.Context, keyName string) (*PublicKey, error) {
	var v validator
	v.notBlank("keyName", keyName)
	if err := v.err(); err != nil {
		return nil, err
	}

	var key PublicKey
	if err := c.getResource(ctx, "api/server/public-keys/"+segment(keyName), nil, &key); err != nil {
		return nil, err
	}

	return &key, nil
}

// ListClientPublicKeys lists the public keys registered for this account.
func (c *Client) ListClientPublicKeys(ctx context.Context) ([]PublicKey, error) {
	var keys []PublicKey
	if err := c.getJSON(ctx, "api/client/public-keys", nil, &keys); err != nil {
		return nil, err
	}

	return keys, nil
}

// GetClientPublicKey returns a registered client public key, or ErrNotFound.
func (c *Client) GetClientPublicKey(ctx context.Context, keyName string) (*PublicKey, error) {
	var v validator
	v.notBlank("keyName", keyName)
	if err := v.err(); err != nil {
		return nil, err
	}

	var key PublicKey
	if err := c.getResource(ctx, "api/client/public-keys/"+segment(keyName), nil, &key); err != nil {
		return nil, err
	}

	return &key, nil
}

// DeleteClientPublicKey removes a registered client public key.
func (c *Client) DeleteClientPublicKey(ctx context.Context, keyName string) error {
	var v validator
	v.notBlank("keyName", keyName)
	if err := v.err(); err != nil {
		return err
	}

	return c.send(ctx, http.MethodDelete, "api/client/public-keys/"+segment(keyName), nil, http.StatusNoContent)
}
