package nhk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabetama/nhk-radio-player/stream/hls"
)

func TestFetchConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(TestConfigXML))
	}))
	defer server.Close()

	client := NewClient(WithConfigURL(server.URL))

	config, err := client.FetchConfig(context.Background())
	require.NoError(t, err)
	assert.Len(t, config.Areas, 2)
}

func TestFetchConfigHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(WithConfigURL(server.URL))

	_, err := client.FetchConfig(context.Background())
	assert.Error(t, err)
}

func TestFetchProgram(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(TestProgramJSON))
	}))
	defer server.Close()

	client := NewClient()

	program, err := client.FetchProgram(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotNil(t, program.R1.Present)
	assert.Equal(t, "ニュース", program.R1.Present.Name)
}

func TestFetchKey(t *testing.T) {
	t.Run("exactly 16 bytes", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("0123456789abcdef"))
		}))
		defer server.Close()

		client := NewClient()

		key, err := client.FetchKey(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Len(t, key, 16)
	})

	t.Run("wrong length", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("short"))
		}))
		defer server.Close()

		client := NewClient()

		_, err := client.FetchKey(context.Background(), server.URL)
		require.Error(t, err)

		var streamErr *hls.StreamError
		require.ErrorAs(t, err, &streamErr)
		assert.Equal(t, hls.ErrCodeKeyInvalid, streamErr.Code)
	})
}

func TestFetchSegment(t *testing.T) {
	payload := []byte{0xFF, 0xF1, 0x00, 0x01, 0x02}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	client := NewClient()

	data, err := client.FetchSegment(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}
