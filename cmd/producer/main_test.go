package main

import (
	"context"
	"encoding/json"
	"lcl_quote/internal/model"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducer_Send(t *testing.T) {
	var received model.QuoteRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"success":true,"quote":43,"message":"ok"}`))
	}))
	defer srv.Close()

	p := NewProducer(producerConfig{APIURL: srv.URL, Seed: 1, Ports: []string{"AEJEA", "CNSHA"}})
	req := p.generator.NewQuoteRequest(time.Now())

	resp, err := p.send(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Quote)
	assert.Equal(t, int64(43), *resp.Quote)
	assert.Equal(t, req.Company, received.Company)
}

func TestProducer_SendBadResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	p := NewProducer(producerConfig{APIURL: srv.URL, Seed: 1, Ports: []string{"AEJEA", "CNSHA"}})
	_, err := p.send(context.Background(), p.generator.NewQuoteRequest(time.Now()))
	assert.Error(t, err)
}
