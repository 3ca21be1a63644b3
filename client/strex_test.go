package client

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrexMerchants(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	f.mux.HandleFunc("GET /api/strex/merchants", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, []StrexMerchantID{
			{MerchantID: "mer_test", ShortNumberID: "NO-0000"},
		})
	})

	f.mux.HandleFunc("GET /api/strex/merchants/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "mer_test" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		writeJSON(t, w, http.StatusOK, StrexMerchantID{MerchantID: "mer_test", ShortNumberID: "NO-0000"})
	})

	merchants, err := f.client.ListMerchantIDs(ctx)
	require.NoError(t, err)
	require.Len(t, merchants, 1)
	assert.Equal(t, "mer_test", merchants[0].MerchantID)

	merchant, err := f.client.GetMerchantID(ctx, "mer_test")
	require.NoError(t, err)
	assert.Equal(t, "NO-0000", merchant.ShortNumberID)

	_, err = f.client.GetMerchantID(ctx, "mer_other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStrexOneTimePasswords(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	f.mux.HandleFunc("POST /api/strex/one-time-passwords", func(w http.ResponseWriter, r *http.Request) {
		var otp StrexOneTimePassword
		readJSON(t, r, &otp)
		assert.Equal(t, "otp-1", otp.TransactionID)
		assert.True(t, otp.Recurring)

		w.WriteHeader(http.StatusCreated)
	})

	f.mux.HandleFunc("GET /api/strex/one-time-passwords/{id}", func(w http.ResponseWriter, r *http.Request) {
		delivered := true
		writeJSON(t, w, http.StatusOK, StrexOneTimePassword{
			TransactionID: r.PathValue("id"),
			MerchantID:    "mer_test",
			Recipient:     "+4798079008",
			Delivered:     &delivered,
		})
	})

	err := f.client.CreateOneTimePassword(ctx, &StrexOneTimePassword{
		TransactionID: "otp-1",
		MerchantID:    "mer_test",
		Recipient:     "+4798079008",
		Recurring:     true,
	})
	require.NoError(t, err)

	otp, err := f.client.GetOneTimePassword(ctx, "otp-1")
	require.NoError(t, err)
	require.NotNil(t, otp.Delivered)
	assert.True(t, *otp.Delivered)

	t.Run("validation", func(t *testing.T) {
		err := f.client.CreateOneTimePassword(ctx, &StrexOneTimePassword{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{
			"oneTimePassword.transactionId must not be blank",
			"oneTimePassword.merchantId must not be blank",
			"oneTimePassword.recipient must not be blank",
		}, verr.Violations)

		err = f.client.CreateOneTimePassword(ctx, nil)
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"oneTimePassword must not be null"}, verr.Violations)
	})
}

func testStrexTransaction(id string) *StrexTransaction {
	return &StrexTransaction{
		TransactionID: id,
		MerchantID:    "mer_test",
		ServiceCode:   "10001",
		InvoiceText:   "Donation test",
		Price:         10,
		ShortNumber:   "2002",
		Recipient:     "+4798079008",
	}
}

func TestStrexTransactions(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	f.mux.HandleFunc("POST /api/strex/transactions", func(w http.ResponseWriter, r *http.Request) {
		var transaction StrexTransaction
		readJSON(t, r, &transaction)
		assert.Equal(t, DefaultStrexTimeout, transaction.Timeout)
		assert.Equal(t, DeliveryModeAtMostOnce, transaction.DeliveryMode)

		w.Header().Set("Location", "/api/strex/transactions/"+transaction.TransactionID)
		w.WriteHeader(http.StatusCreated)
	})

	f.mux.HandleFunc("GET /api/strex/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		transaction := testStrexTransaction(r.PathValue("id"))
		transaction.StatusCode = StatusOk
		transaction.DetailedStatusCode = DetailedDelivered
		writeJSON(t, w, http.StatusOK, transaction)
	})

	f.mux.HandleFunc("DELETE /api/strex/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/api/strex/transactions/-"+r.PathValue("id"))
		w.WriteHeader(http.StatusCreated)
	})

	f.mux.HandleFunc("GET /api/strex/validity", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "+4798079008", r.URL.Query().Get("recipient"))

		if r.URL.Query().Get("merchantId") == "mer_unknown" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		writeJSON(t, w, http.StatusOK, UserValidityFull)
	})

	t.Run("create applies defaults", func(t *testing.T) {
		transaction := testStrexTransaction("st-1")

		require.NoError(t, f.client.CreateStrexTransaction(ctx, transaction))
		assert.Zero(t, transaction.Timeout)
	})

	t.Run("get", func(t *testing.T) {
		transaction, err := f.client.GetStrexTransaction(ctx, "st-1")
		require.NoError(t, err)
		assert.Equal(t, StatusOk, transaction.StatusCode)
		assert.Equal(t, DetailedDelivered, transaction.DetailedStatusCode)
	})

	t.Run("reverse returns reversal id", func(t *testing.T) {
		id, err := f.client.ReverseStrexTransaction(ctx, "st-1")
		require.NoError(t, err)
		assert.Equal(t, "-st-1", id)
	})

	t.Run("user validity", func(t *testing.T) {
		validity, err := f.client.GetUserValidity(ctx, "+4798079008", "mer_test")
		require.NoError(t, err)
		assert.Equal(t, UserValidityFull, validity)

		_, err = f.client.GetUserValidity(ctx, "+4798079008", "mer_unknown")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		err := f.client.CreateStrexTransaction(ctx, &StrexTransaction{TransactionID: "st-2"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{
			"transaction.merchantId must not be blank",
			"transaction.serviceCode must not be blank",
			"transaction.invoiceText must not be blank",
			"transaction.shortNumber must not be blank",
		}, verr.Violations)

		_, err = f.client.ReverseStrexTransaction(ctx, "")
		assert.ErrorAs(t, err, &verr)

		_, err = f.client.GetUserValidity(ctx, "", "")
		assert.ErrorAs(t, err, &verr)
	})
}

func TestOneClickConfigs(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	var (
		mu      sync.Mutex
		configs = map[string]OneClickConfig{}
	)

	f.mux.HandleFunc("PUT /api/one-click/configs/{id}", func(w http.ResponseWriter, r *http.Request) {
		var config OneClickConfig
		readJSON(t, r, &config)
		assert.Equal(t, r.PathValue("id"), config.ConfigID)

		mu.Lock()
		configs[config.ConfigID] = config
		mu.Unlock()

		w.WriteHeader(http.StatusCreated)
	})

	f.mux.HandleFunc("GET /api/one-click/configs/{id}", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		config, ok := configs[r.PathValue("id")]
		mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		writeJSON(t, w, http.StatusOK, config)
	})

	subscriptionPrice := 49.0
	config := &OneClickConfig{
		ConfigID:             "oc-1",
		ShortNumber:          "2002",
		MerchantID:           "mer_test",
		ServiceCode:          "10001",
		InvoiceText:          "Monthly subscription",
		Price:                49,
		IsRecurring:          true,
		RedirectURL:          "https://example.com/done",
		SubscriptionPrice:    &subscriptionPrice,
		SubscriptionInterval: "monthly",
	}

	t.Run("save applies default timeout", func(t *testing.T) {
		require.NoError(t, f.client.SaveOneClickConfig(ctx, config))
		assert.Zero(t, config.Timeout)
	})

	t.Run("get", func(t *testing.T) {
		got, err := f.client.GetOneClickConfig(ctx, "oc-1")
		require.NoError(t, err)
		assert.Equal(t, DefaultStrexTimeout, got.Timeout)
		assert.True(t, got.IsRecurring)
		assert.Equal(t, "https://example.com/done", got.RedirectURL)
		require.NotNil(t, got.SubscriptionPrice)
		assert.Equal(t, 49.0, *got.SubscriptionPrice)
	})

	t.Run("unknown config", func(t *testing.T) {
		_, err := f.client.GetOneClickConfig(ctx, "oc-missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("validation", func(t *testing.T) {
		err := f.client.SaveOneClickConfig(ctx, &OneClickConfig{ConfigID: "oc-2"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{
			"config.shortNumber must not be blank",
			"config.merchantId must not be blank",
			"config.serviceCode must not be blank",
			"config.invoiceText must not be blank",
			"config.redirectUrl must not be blank",
		}, verr.Violations)

		err = f.client.SaveOneClickConfig(ctx, nil)
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"config must not be null"}, verr.Violations)

		_, err = f.client.GetOneClickConfig(ctx, " ")
		assert.ErrorAs(t, err, &verr)
	})
}
