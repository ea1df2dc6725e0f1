package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dancefusion/internal/apiserver/httpapi"
	"dancefusion/internal/shared/payment"
	"dancefusion/pkg/logging"
)

// fakeCreator 模拟支付处理方
type fakeCreator struct {
	got payment.IntentRequest
	err error
}

func (f *fakeCreator) CreateIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &payment.Intent{ID: "pi_1", ClientSecret: "pi_1_secret_xyz", Amount: req.Amount, Currency: req.Currency}, nil
}

type countingRecorder map[string]int

func (c countingRecorder) RecordPaymentIntent(result string) {
	c[result]++
}

func setup(creator *fakeCreator) (*http.ServeMux, countingRecorder) {
	rec := countingRecorder{}
	mux := http.NewServeMux()
	gw := payment.NewGateway(creator, "usd", []string{"card"})
	NewHandler(gw, rec, logging.Discard()).RegisterRoutes(mux)
	return mux, rec
}

func post(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateIntent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantAmount int64
	}{
		{"整数价格", `{"price":20}`, 2000},
		{"小数价格", `{"price":49.99}`, 4999},
		{"字符串价格", `{"price":"12.5"}`, 1250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeCreator{}
			mux, recorder := setup(creator)

			rec := post(mux, tt.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var resp map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "pi_1_secret_xyz", resp["clientSecret"])
			assert.Equal(t, tt.wantAmount, creator.got.Amount)
			assert.Equal(t, "usd", creator.got.Currency)
			assert.Equal(t, []string{"card"}, creator.got.PaymentMethodTypes)
			assert.Equal(t, 1, recorder[ResultSuccess])
		})
	}
}

func TestCreateIntent_InvalidPrice(t *testing.T) {
	for _, body := range []string{`{}`, `{"price":0}`, `{"price":-3}`, `{"price":"free"}`, `not json`} {
		creator := &fakeCreator{}
		mux, recorder := setup(creator)

		rec := post(mux, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Zero(t, creator.got.Amount, "upstream must not be called for %s", body)
		assert.Equal(t, 1, recorder[ResultRejected])
	}
}

func TestCreateIntent_UpstreamFailure(t *testing.T) {
	mux, recorder := setup(&fakeCreator{err: errors.New("card_declined")})

	rec := post(mux, `{"price":20}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var body httpapi.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Error)
	assert.NotContains(t, body.Message, "card_declined")
	assert.Equal(t, 1, recorder[ResultError])
}
