package consulting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"listing-site/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormRelayPostsFormEncodedFields(t *testing.T) {
	var (
		gotMethod, gotType, gotTrace string
		gotForm                      url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotTrace = r.Header.Get("X-Trace-ID")
		_ = r.ParseForm()
		gotForm = r.PostForm
		// внешний сервис может ответить чем угодно
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	sink, err := NewFormRelaySink(srv.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "form_relay", sink.Name())

	err = sink.Deliver(context.Background(), domain.ConsultingRequest{
		ID:      uuid.New(),
		TraceID: "trace-7",
		Fields: map[string][]string{
			"Name":   {"Nguyễn Văn A"},
			"Phone":  {"0900 000 000"},
			"Option": {"a", "b"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/x-www-form-urlencoded", gotType)
	assert.Equal(t, "trace-7", gotTrace)
	assert.Equal(t, "Nguyễn Văn A", gotForm.Get("Name"))
	assert.Equal(t, []string{"a", "b"}, gotForm["Option"])
}

func TestFormRelayReportsTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	sink, err := NewFormRelaySink(srv.URL, time.Second)
	require.NoError(t, err)
	assert.Error(t, sink.Deliver(context.Background(), domain.ConsultingRequest{ID: uuid.New()}))
}

func TestNewFormRelaySinkValidatesURL(t *testing.T) {
	_, err := NewFormRelaySink("", time.Second)
	assert.Error(t, err)
	_, err = NewFormRelaySink("not a url", time.Second)
	assert.Error(t, err)
}
