package client

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOutMessage(id string) *OutMessage {
	return &OutMessage{
		TransactionID: id,
		Sender:        "Target365",
		Recipient:     "+4798079008",
		Content:       "Hello World from SDK",
	}
}

func TestOutMessages(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	f.mux.HandleFunc("POST /api/out-messages", func(w http.ResponseWriter, r *http.Request) {
		var message OutMessage
		readJSON(t, r, &message)

		assert.Equal(t, DefaultTimeToLive, message.TimeToLive)
		assert.Equal(t, PriorityNormal, message.Priority)
		assert.Equal(t, DeliveryModeAtMostOnce, message.DeliveryMode)

		w.Header().Set("Location", "/api/out-messages/"+message.TransactionID)
		w.WriteHeader(http.StatusCreated)
	})

	f.mux.HandleFunc("POST /api/out-messages/batch", func(w http.ResponseWriter, r *http.Request) {
		var items []OutMessage
		readJSON(t, r, &items)
		assert.Len(t, items, 2)

		w.WriteHeader(http.StatusCreated)
	})

	f.mux.HandleFunc("GET /api/out-messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		message := testOutMessage(r.PathValue("id"))
		message.StatusCode = StatusQueued
		writeJSON(t, w, http.StatusOK, message)
	})

	f.mux.HandleFunc("PUT /api/out-messages/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	f.mux.HandleFunc("DELETE /api/out-messages/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	f.mux.HandleFunc("GET /api/export/out-messages", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-01-01T00:00:00Z", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-01-02T12:30:00Z", r.URL.Query().Get("to"))

		io.WriteString(w, "transactionId,sender\ntx-1,Target365\n")
	})

	t.Run("create applies defaults", func(t *testing.T) {
		message := testOutMessage("tx-1")

		id, err := f.client.CreateOutMessage(ctx, message)
		require.NoError(t, err)

		assert.Equal(t, "tx-1", id)
		assert.Zero(t, message.TimeToLive, "caller's message is not modified")
	})

	t.Run("create keeps explicit values", func(t *testing.T) {
		message := testOutMessage("tx-2")
		message.TimeToLive = DefaultTimeToLive
		message.Priority = PriorityNormal

		_, err := f.client.CreateOutMessage(ctx, message)
		assert.NoError(t, err)
	})

	t.Run("batch returns transaction ids", func(t *testing.T) {
		ids, err := f.client.CreateOutMessageBatch(ctx, []*OutMessage{testOutMessage("b-1"), testOutMessage("b-2")})
		require.NoError(t, err)
		assert.Equal(t, []string{"b-1", "b-2"}, ids)
	})

	t.Run("get", func(t *testing.T) {
		message, err := f.client.GetOutMessage(ctx, "tx-1")
		require.NoError(t, err)
		assert.Equal(t, "tx-1", message.TransactionID)
		assert.Equal(t, StatusQueued, message.StatusCode)
	})

	t.Run("update and delete", func(t *testing.T) {
		assert.NoError(t, f.client.UpdateOutMessage(ctx, testOutMessage("tx-1")))
		assert.NoError(t, f.client.DeleteOutMessage(ctx, "tx-1"))
	})

	t.Run("export", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 1, 2, 13, 30, 0, 0, time.FixedZone("CET", 3600))

		csv, err := f.client.ExportOutMessages(ctx, from, to)
		require.NoError(t, err)
		assert.Equal(t, "transactionId,sender\ntx-1,Target365\n", csv)
	})
}

func TestOutMessageValidation(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	t.Run("required fields", func(t *testing.T) {
		_, err := f.client.CreateOutMessage(ctx, &OutMessage{TimeToLive: 4})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{
			"outMessage.sender must not be blank",
			"outMessage.recipient must not be blank",
			"outMessage.content must not be blank",
			"outMessage.timeToLive must be between 5 and 1440",
		}, verr.Violations)
	})

	t.Run("strex data", func(t *testing.T) {
		message := testOutMessage("tx")
		message.Strex = &StrexData{Price: 10}

		_, err := f.client.CreateOutMessage(ctx, message)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{
			"outMessage.strex.merchantId must not be blank",
			"outMessage.strex.serviceCode must not be blank",
			"outMessage.strex.invoiceText must not be blank",
		}, verr.Violations)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := f.client.CreateOutMessageBatch(ctx, nil)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"items must not be empty"}, verr.Violations)
	})

	t.Run("invalid batch item", func(t *testing.T) {
		_, err := f.client.CreateOutMessageBatch(ctx, []*OutMessage{testOutMessage("ok"), {Sender: "x", Recipient: "y"}})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"items[1].content must not be blank"}, verr.Violations)
	})

	t.Run("update without transaction id", func(t *testing.T) {
		err := f.client.UpdateOutMessage(ctx, testOutMessage(""))

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"outMessage.transactionId must not be blank"}, verr.Violations)
	})

	t.Run("export without bounds", func(t *testing.T) {
		_, err := f.client.ExportOutMessages(ctx, time.Time{}, time.Time{})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{"from must not be null", "to must not be null"}, verr.Violations)
	})
}

func TestLookupAndInMessages(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	f.mux.HandleFunc("GET /api/lookup", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "+4798079008", r.URL.Query().Get("msisdn"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"msisdn":    "+4798079008",
			"firstName": "Ola",
			"lastName":  "Nordmann",
			"gender":    "M",
			"age":       42,
		})
	})

	f.mux.HandleFunc("POST /api/prepare-msisdns", func(w http.ResponseWriter, r *http.Request) {
		var msisdns []string
		readJSON(t, r, &msisdns)
		assert.Equal(t, []string{"+4798079008"}, msisdns)

		w.WriteHeader(http.StatusNoContent)
	})

	f.mux.HandleFunc("GET /api/in-messages/{short}/{tx}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, InMessage{
			TransactionID: r.PathValue("tx"),
			Sender:        "+4798079008",
			Recipient:     r.PathValue("short"),
			Content:       "HELLO",
		})
	})

	t.Run("address lookup", func(t *testing.T) {
		result, err := f.client.AddressLookup(ctx, "+4798079008")
		require.NoError(t, err)

		assert.Equal(t, "Ola", result.FirstName)
		assert.Equal(t, GenderMale, result.Gender)
		require.NotNil(t, result.Age)
		assert.Equal(t, 42, *result.Age)
	})

	t.Run("prepare msisdns", func(t *testing.T) {
		assert.NoError(t, f.client.PrepareMsisdns(ctx, []string{"+4798079008"}))
	})

	t.Run("prepare msisdns validation", func(t *testing.T) {
		err := f.client.PrepareMsisdns(ctx, []string{"+4798079008", " "})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"msisdns must not contain blank values"}, verr.Violations)
	})

	t.Run("in-message", func(t *testing.T) {
		message, err := f.client.GetInMessage(ctx, "NO-0000", "in-1")
		require.NoError(t, err)
		assert.Equal(t, "in-1", message.TransactionID)
		assert.Equal(t, "NO-0000", message.Recipient)
	})

	t.Run("in-message validation", func(t *testing.T) {
		_, err := f.client.GetInMessage(ctx, "", "")

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Violations, 2)
	})
}
