package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CompressTestSuite struct {
	suite.Suite
	router *chi.Mux
	ts     *httptest.Server
	client *resty.Client
}

func (suite *CompressTestSuite) SetupTest() {
	suite.router = chi.NewRouter()
	suite.ts = httptest.NewServer(suite.router)
	suite.client = resty.New().SetBaseURL(suite.ts.URL)
}

func (suite *CompressTestSuite) TearDownTest() {
	suite.ts.Close()
}

func TestCompressTestSuite(t *testing.T) {
	suite.Run(t, new(CompressTestSuite))
}

func echo(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_, _ = w.Write(b)
}

func gzipped(t testing.TB, payload string) string {
	var b bytes.Buffer
	gz := gzip.NewWriter(&b)
	_, err := gz.Write([]byte(payload))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return b.String()
}

func (suite *CompressTestSuite) TestCompressHandle() {
	suite.router.Use(CompressHandle)
	suite.router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hash":"block_hash"}`))
	})

	tests := []struct {
		name              string
		expectedEncoding  string
		acceptedEncodings []string
	}{
		{name: "no encoding", acceptedEncodings: nil, expectedEncoding: ""},
		{name: "gzip encoding", acceptedEncodings: []string{"gzip"}, expectedEncoding: "gzip"},
		{name: "multiple encodings", acceptedEncodings: []string{"deflate", "gzip"}, expectedEncoding: "gzip"},
	}
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := suite.client.R().
				SetDoNotParseResponse(true).
				SetHeader("Accept-Encoding", strings.Join(tt.acceptedEncodings, ",")).
				Get("/get")
			require.NoError(t, err)
			defer res.RawBody().Close()
			assert.Equal(t, tt.expectedEncoding, res.Header().Get("Content-Encoding"))
			if tt.expectedEncoding == "" {
				return
			}
			gz, err := gzip.NewReader(res.RawBody())
			require.NoError(t, err)
			body, err := io.ReadAll(gz)
			require.NoError(t, err)
			assert.Equal(t, `{"hash":"block_hash"}`, string(body))
		})
	}
}

func (suite *CompressTestSuite) TestDecompressHandle() {
	suite.router.Use(DecompressHandle)
	suite.router.Post("/post", echo)

	tests := []struct {
		name          string
		queryEncoding string
		payload       string
		body          string
		code          int
	}{
		{name: "no encoding", queryEncoding: "", payload: "some_data", body: "some_data", code: http.StatusOK},
		{name: "gzip encoding", queryEncoding: "gzip", payload: gzipped(suite.T(), "some_other_data"), body: "some_other_data", code: http.StatusOK},
		{name: "broken gzip", queryEncoding: "gzip", payload: "not_gzip", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res, err := suite.client.R().SetHeader("Content-Encoding", tt.queryEncoding).SetBody(tt.payload).Post("/post")
			require.NoError(t, err)
			assert.Equal(t, tt.code, res.StatusCode())
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.body, string(res.Body()))
			}
		})
	}
}

// Benchmarks

func BenchmarkCompressHandle(b *testing.B) {
	router := chi.NewRouter()
	client := resty.New()
	ts := httptest.NewServer(router)
	defer ts.Close()
	router.Use(CompressHandle)
	router.Get("/get", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("textstring"))
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.R().SetHeader("Accept-Encoding", "gzip").Get(ts.URL + "/get")
	}
}

func BenchmarkDecompressHandle(b *testing.B) {
	router := chi.NewRouter()
	client := resty.New()
	ts := httptest.NewServer(router)
	defer ts.Close()
	router.Use(DecompressHandle)
	router.Post("/post", echo)
	payload := gzipped(b, "some_data")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.R().SetHeader("Content-Encoding", "gzip").SetBody(payload).Post(ts.URL + "/post")
	}
}
