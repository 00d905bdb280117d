package services

import (
	"context"
	"errors"

	"github.com/aurawear/aurawear-backend/internal/clients/stylist"
	"github.com/aurawear/aurawear-backend/internal/platform/apierr"
	"github.com/aurawear/aurawear-backend/internal/platform/httpx"
	"github.com/aurawear/aurawear-backend/internal/platform/logger"
)

// ColorAnalysisService is a passthrough: the image payload goes to the
// stylist service and its structured response is relayed unchanged.
type ColorAnalysisService interface {
	Analyze(ctx context.Context, image string) (*stylist.AnalyzeColorResponse, error)
}

type colorAnalysisService struct {
	log     *logger.Logger
	stylist stylist.Client
}

func NewColorAnalysisService(baseLog *logger.Logger, stylistClient stylist.Client) ColorAnalysisService {
	return &colorAnalysisService{
		log:     baseLog.With("service", "ColorAnalysisService"),
		stylist: stylistClient,
	}
}

func (s *colorAnalysisService) Analyze(ctx context.Context, image string) (*stylist.AnalyzeColorResponse, error) {
	resp, err := s.stylist.AnalyzeColor(ctx, stylist.AnalyzeColorRequest{Image: image})
	if err != nil {
		var se *stylist.StatusError
		if errors.As(err, &se) {
			return nil, apierr.Upstream(se.Code, err)
		}
		if httpx.IsUnreachableError(err) {
			return nil, apierr.Unavailable(err)
		}
		return nil, apierr.Internal(err)
	}
	return resp, nil
}
