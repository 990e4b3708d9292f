package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/enquiries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestEnquiryValidation(t *testing.T) {
	// Validation failures never reach the repositories, so nil deps are
	// safe here.
	h := NewBookingHandler(nil, nil, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing name",
			body: `{"customer_email":"a@b.c","act_id":1}`,
			want: "customer_name and customer_email required",
		},
		{
			name: "missing email",
			body: `{"customer_name":"Ann","act_id":1}`,
			want: "customer_name and customer_email required",
		},
		{
			name: "bad email",
			body: `{"customer_name":"Ann","customer_email":"not-an-email","act_id":1}`,
			want: "invalid customer_email",
		},
		{
			name: "no listing reference",
			body: `{"customer_name":"Ann","customer_email":"a@b.c"}`,
			want: "act_id or venue_id required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Create, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestReviewValidation(t *testing.T) {
	h := NewReviewHandler(nil, nil, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing author",
			body: `{"rating":5,"act_id":1}`,
			want: "author_name required",
		},
		{
			name: "neither reference",
			body: `{"author_name":"Ann","rating":5}`,
			want: "exactly one of act_id or venue_id required",
		},
		{
			name: "both references",
			body: `{"author_name":"Ann","rating":5,"act_id":1,"venue_id":2}`,
			want: "exactly one of act_id or venue_id required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.Create, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}
