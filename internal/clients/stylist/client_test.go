package stylist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aurawear/aurawear-backend/internal/platform/httpx"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

func testClient(t *testing.T, baseURL string) Client {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	return NewClient(log, Config{
		BaseURL:          baseURL,
		AnalyzeTimeout:   5 * time.Second,
		RecommendTimeout: 5 * time.Second,
	})
}

func TestAnalyzeColorSendsImageAndDecodesResponse(t *testing.T) {
	var gotPath string
	var gotBody AnalyzeColorRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(AnalyzeColorResponse{
			Season12:         "Light Spring",
			SeasonHex:        "#F5D7B8",
			SeasonConfidence: 0.87,
			Undertone:        "warm",
			SkinColorHex:     "#E8C4A0",
			Palette: []PaletteColor{
				{ID: "ls_01", Name: "Peach", Hex: "#FFDAB9"},
			},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	resp, err := c.AnalyzeColor(context.Background(), AnalyzeColorRequest{Image: "base64data"})
	require.NoError(t, err)

	require.Equal(t, "/analyze-color", gotPath)
	require.Equal(t, "base64data", gotBody.Image)
	require.Equal(t, "Light Spring", resp.Season12)
	require.Len(t, resp.Palette, 1)
	require.Equal(t, "ls_01", resp.Palette[0].ID)
}

func TestRecommendAndRegenerateHitSameEndpoint(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		saved := true
		json.NewEncoder(w).Encode(RecommendResponse{
			RecommendedImages: []RecommendedImage{{ImageID: "img_001", RankOrder: 0}},
			VectorSaved:       &saved,
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)

	_, err := c.Recommend(context.Background(), RecommendRequest{})
	require.NoError(t, err)
	resp, err := c.Regenerate(context.Background(), RegenerateRequest{})
	require.NoError(t, err)

	require.Equal(t, []string{"/recommend", "/recommend"}, paths)
	require.NotNil(t, resp.VectorSaved)
	require.True(t, *resp.VectorSaved)
}

func TestNonSuccessStatusIsPassedThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"detail":"model overloaded"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.Recommend(context.Background(), RecommendRequest{})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadGateway, statusErr.Code)
	require.Contains(t, statusErr.Body, "model overloaded")
}

func TestTimeoutClassifiedAsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	log, err := logger.New("test")
	require.NoError(t, err)
	c := NewClient(log, Config{
		BaseURL:          srv.URL,
		AnalyzeTimeout:   20 * time.Millisecond,
		RecommendTimeout: 20 * time.Millisecond,
	})

	_, err = c.AnalyzeColor(context.Background(), AnalyzeColorRequest{Image: "x"})
	require.Error(t, err)
	var statusErr *StatusError
	require.False(t, errors.As(err, &statusErr), "timeout must not look like an upstream status")
	require.True(t, httpx.IsUnreachableError(err))
}

func TestRefusedConnectionClassifiedAsUnreachable(t *testing.T) {
	// Grab a port nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := testClient(t, url)
	_, err := c.Recommend(context.Background(), RecommendRequest{})
	require.Error(t, err)
	require.True(t, httpx.IsUnreachableError(err))
}
