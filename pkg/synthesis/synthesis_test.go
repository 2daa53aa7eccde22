package synthesis_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/speechbridge/pkg/provider"
	"github.com/adrianliechti/speechbridge/pkg/provider/fishaudio"
	"github.com/adrianliechti/speechbridge/pkg/synthesis"

	"github.com/stretchr/testify/require"
)

type mockSynthesizer struct {
	synthesis *provider.Synthesis
	err       error

	input   string
	options *provider.SynthesizeOptions
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, input string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	m.input = input
	m.options = options

	return m.synthesis, m.err
}

func newFishProxy(t *testing.T, handler http.HandlerFunc) *synthesis.Proxy {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := fishaudio.NewSynthesizer(srv.URL, "")
	require.NoError(t, err)

	return synthesis.New(s)
}

func decodeRequest(t *testing.T, data string) synthesis.Request {
	var req synthesis.Request

	err := json.Unmarshal([]byte(data), &req)
	require.NoError(t, err)

	return req
}

func TestRequestDefaults(t *testing.T) {
	req := decodeRequest(t, `{"text":"hello","api_key":"k1","reference_id":"ref1"}`)

	require.Equal(t, "hello", req.Text)
	require.Equal(t, "k1", req.APIKey)
	require.Equal(t, "ref1", req.ReferenceID)
	require.Equal(t, "s1", req.Model)
	require.Equal(t, "mp3", req.Format)

	req = decodeRequest(t, `{"text":"hello","api_key":"k1","reference_id":"ref1","model":"speech-1.6","format":"wav"}`)

	require.Equal(t, "speech-1.6", req.Model)
	require.Equal(t, "wav", req.Format)
}

func TestRequestMissingFields(t *testing.T) {
	cases := map[string]string{
		"text":         `{"api_key":"k1","reference_id":"ref1"}`,
		"api_key":      `{"text":"hello","reference_id":"ref1"}`,
		"reference_id": `{"text":"hello","api_key":"k1","reference_id":null}`,
	}

	for field, data := range cases {
		var req synthesis.Request

		err := json.Unmarshal([]byte(data), &req)
		require.EqualError(t, err, `missing field "`+field+`"`)
	}

	var req synthesis.Request

	err := json.Unmarshal([]byte(`{}`), &req)
	require.EqualError(t, err, `missing field "text"`)
}

func TestRequestRejectedBeforeUpstream(t *testing.T) {
	var called bool

	p := newFishProxy(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.Write([]byte{0x01})
	})

	var req synthesis.Request

	if err := json.Unmarshal([]byte(`{"text":"hello"}`), &req); err == nil {
		p.Synthesize(context.Background(), req)
	}

	require.False(t, called)
}

func TestRequestExplicitEmptyFormat(t *testing.T) {
	var observed map[string]any

	p := newFishProxy(t, func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&observed)
		require.NoError(t, err)

		w.Write([]byte{0x01})
	})

	req := decodeRequest(t, `{"text":"hello","api_key":"k1","reference_id":"ref1","format":""}`)
	require.Equal(t, "", req.Format)
	require.Equal(t, "s1", req.Model)

	result := p.Synthesize(context.Background(), req)
	require.True(t, result.Success)

	require.Equal(t, "", observed["format"])
}

func TestSynthesizeSuccess(t *testing.T) {
	var observed map[string]any

	p := newFishProxy(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer k1", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		err = json.Unmarshal(body, &observed)
		require.NoError(t, err)

		w.WriteHeader(http.StatusOK)
		w.Write([]byte{0x01, 0x02})
	})

	req := decodeRequest(t, `{"text":"hello","api_key":"k1","reference_id":"ref1"}`)
	result := p.Synthesize(context.Background(), req)

	require.True(t, result.Success)
	require.NotNil(t, result.AudioBase64)
	require.Equal(t, "AQI=", *result.AudioBase64)
	require.Nil(t, result.Error)

	require.Equal(t, "mp3", observed["format"])
	require.Equal(t, "ref1", observed["reference_id"])
	require.NotContains(t, observed, "model")
	require.NotContains(t, observed, "api_key")

	data, err := json.Marshal(result)
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true,"audio_base64":"AQI=","error":null}`, string(data))
}

func TestSynthesizeAPIError(t *testing.T) {
	p := newFishProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid key"))
	})

	req := decodeRequest(t, `{"text":"hello","api_key":"k1","reference_id":"ref1"}`)
	result := p.Synthesize(context.Background(), req)

	require.False(t, result.Success)
	require.Nil(t, result.AudioBase64)
	require.NotNil(t, result.Error)
	require.Equal(t, "API error 401 Unauthorized: invalid key", *result.Error)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	require.JSONEq(t, `{"success":false,"audio_base64":null,"error":"API error 401 Unauthorized: invalid key"}`, string(data))
}

func TestSynthesizeServerError(t *testing.T) {
	p := newFishProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	})

	result := p.Synthesize(context.Background(), synthesis.Request{Text: "hello"})

	require.False(t, result.Success)
	require.Nil(t, result.AudioBase64)
	require.Contains(t, *result.Error, "502")
	require.Contains(t, *result.Error, "upstream down")
}

func TestSynthesizeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s, err := fishaudio.NewSynthesizer(url, "")
	require.NoError(t, err)

	result := synthesis.New(s).Synthesize(context.Background(), synthesis.Request{Text: "hello"})

	require.False(t, result.Success)
	require.Nil(t, result.AudioBase64)
	require.NotNil(t, result.Error)
	require.NotEmpty(t, *result.Error)
	require.Contains(t, *result.Error, "request failed: ")
	require.NotContains(t, *result.Error, "API error")
}

func TestSynthesizeOptions(t *testing.T) {
	m := &mockSynthesizer{
		synthesis: &provider.Synthesis{Content: []byte("audio")},
	}

	result := synthesis.New(m).Synthesize(context.Background(), synthesis.Request{
		Text: "hello",

		APIKey:      "k1",
		ReferenceID: "ref1",

		Model:  "s1",
		Format: "opus",
	})

	require.True(t, result.Success)
	require.Equal(t, "hello", m.input)
	require.Equal(t, &provider.SynthesizeOptions{
		Model: "s1",
		Voice: "ref1",

		Format: "opus",
		Token:  "k1",
	}, m.options)
}

func TestSynthesizeUntypedError(t *testing.T) {
	m := &mockSynthesizer{
		err: errors.New("boom"),
	}

	result := synthesis.New(m).Synthesize(context.Background(), synthesis.Request{Text: "hello"})

	require.False(t, result.Success)
	require.Equal(t, "request failed: boom", *result.Error)
}

func TestSynthesizeNeverPanics(t *testing.T) {
	m := &mockSynthesizer{}

	result := synthesis.New(m).Synthesize(context.Background(), synthesis.Request{Text: "hello"})

	require.False(t, result.Success)
	require.Nil(t, result.AudioBase64)
	require.NotNil(t, result.Error)
}

func TestResultExclusive(t *testing.T) {
	cases := []*mockSynthesizer{
		{synthesis: &provider.Synthesis{}},
		{synthesis: &provider.Synthesis{Content: []byte{0xff}}},
		{err: &provider.APIError{StatusCode: 500, Body: "oops"}},
		{err: &provider.ReadError{Err: io.ErrUnexpectedEOF}},
		{err: &provider.TransportError{Err: io.EOF}},
	}

	for _, m := range cases {
		result := synthesis.New(m).Synthesize(context.Background(), synthesis.Request{})

		require.Equal(t, result.Success, result.AudioBase64 != nil)
		require.Equal(t, !result.Success, result.Error != nil)
	}
}

func TestGreet(t *testing.T) {
	require.Equal(t, "Hello, Ada! You've been greeted from Rust!", synthesis.Greet("Ada"))
}
