package service

import (
	"errors"
	"time"

	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"gorm.io/gorm"
)

type TastingService interface {
	ListTastings(userID uint) ([]model.Tasting, error)
	WineTastings(userID, wineID uint) ([]model.Tasting, error)
	AddTasting(userID uint, req model.CreateTastingRequest) (*model.Tasting, error)
}

type tastingService struct {
	tastingRepo     repository.TastingRepository
	wineRepo        repository.WineRepository
	activityService ActivityService
}

func NewTastingService(
	tastingRepo repository.TastingRepository,
	wineRepo repository.WineRepository,
	activityService ActivityService,
) TastingService {
	return &tastingService{
		tastingRepo:     tastingRepo,
		wineRepo:        wineRepo,
		activityService: activityService,
	}
}

// ListTastings returns the user's tasting journal, most recent first
func (s *tastingService) ListTastings(userID uint) ([]model.Tasting, error) {
	return s.tastingRepo.FindByUserID(userID)
}

// WineTastings returns the tasting history of one wine
func (s *tastingService) WineTastings(userID, wineID uint) ([]model.Tasting, error) {
	return s.tastingRepo.FindByUserAndWine(userID, wineID)
}

// AddTasting appends a tasting record and logs a "tasted" activity with
// the wine's name. The name lookup is a separate read after the insert;
// if it fails the tasting stands and only the feed entry is skipped.
func (s *tastingService) AddTasting(userID uint, req model.CreateTastingRequest) (*model.Tasting, error) {
	tastingDate := time.Now()
	if req.TastingDate != nil {
		tastingDate = *req.TastingDate
	}

	tasting := &model.Tasting{
		UserID:            userID,
		WineID:            req.WineID,
		Rating:            req.Rating,
		TastingDate:       tastingDate,
		TastingNotes:      req.TastingNotes,
		ColorNotes:        req.ColorNotes,
		AromaNotes:        req.AromaNotes,
		TasteNotes:        req.TasteNotes,
		FinishNotes:       req.FinishNotes,
		OverallImpression: req.OverallImpression,
	}

	if err := s.tastingRepo.Create(tasting); err != nil {
		logger.Error("Failed to record tasting", err, map[string]interface{}{
			"user_id": userID,
			"wine_id": req.WineID,
		})
		return nil, err
	}

	wineName, err := s.wineRepo.FindNameByID(req.WineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Wine vanished before activity could be logged", map[string]interface{}{
				"user_id": userID,
				"wine_id": req.WineID,
			})
		} else {
			logger.Error("Failed to resolve wine name for tasting activity", err, map[string]interface{}{
				"user_id": userID,
				"wine_id": req.WineID,
			})
		}
	} else {
		wineID := req.WineID
		activity := &model.CommunityActivity{
			UserID:       userID,
			ActivityType: model.ActivityTasted,
			WineID:       &wineID,
			WineName:     wineName,
			Rating:       req.Rating,
			Notes:        req.TastingNotes,
		}
		if err := s.activityService.Record(activity); err != nil {
			logger.Error("Failed to record tasted-wine activity", err, map[string]interface{}{
				"user_id": userID,
				"wine_id": req.WineID,
			})
		}
	}

	logger.Info("Tasting recorded", map[string]interface{}{
		"user_id":    userID,
		"wine_id":    req.WineID,
		"tasting_id": tasting.ID,
	})
	return tasting, nil
}
