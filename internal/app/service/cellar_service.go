package service

import (
	"errors"

	"github.com/lib/pq"
	"github.com/vinocave/vinocave-backend/internal/app/model"
	"github.com/vinocave/vinocave-backend/internal/app/repository"
	"github.com/vinocave/vinocave-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCellarWineNotFound   = errors.New("wine not found in cellar")
	ErrWineNotFound         = errors.New("wine not found")
	ErrInvalidWineType      = errors.New("invalid wine type")
	ErrInvalidRemovalReason = errors.New("invalid removal reason")
	ErrInvalidCellarMode    = errors.New("invalid cellar mode")
)

type CellarService interface {
	ListCellar(userID uint, query model.CellarListQuery) ([]CellarEntry, error)
	GetCellarWine(userID, id uint) (*model.CellarWine, error)
	AddWine(userID uint, req model.AddWineRequest) (*model.CellarWine, error)
	UpdateCellarWine(userID, id uint, req model.UpdateCellarWineRequest) (*model.CellarWine, error)
	RemoveWine(userID, id uint, reason model.RemovalReason) error
}

type cellarService struct {
	cellarRepo      repository.CellarRepository
	tastingRepo     repository.TastingRepository
	activityService ActivityService
}

func NewCellarService(
	cellarRepo repository.CellarRepository,
	tastingRepo repository.TastingRepository,
	activityService ActivityService,
) CellarService {
	return &cellarService{
		cellarRepo:      cellarRepo,
		tastingRepo:     tastingRepo,
		activityService: activityService,
	}
}

// ListCellar returns the user's cellar denormalized with each wine's
// latest tasting, filtered and sorted according to the query
func (s *cellarService) ListCellar(userID uint, query model.CellarListQuery) ([]CellarEntry, error) {
	items, err := s.cellarRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cellar", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	entries := s.denormalize(userID, items)
	return FilterAndSortCellar(entries, query.Search, query.Type, query.Sort), nil
}

func (s *cellarService) GetCellarWine(userID, id uint) (*model.CellarWine, error) {
	item, err := s.cellarRepo.FindByIDAndUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCellarWineNotFound
		}
		return nil, err
	}
	return item, nil
}

// AddWine creates the catalog row and the ownership row, then logs an
// "added" activity. The two inserts share a transaction; the activity
// is best effort and never rolls back a committed add.
func (s *cellarService) AddWine(userID uint, req model.AddWineRequest) (*model.CellarWine, error) {
	if !model.IsValidWineType(req.Type) {
		return nil, ErrInvalidWineType
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	wine := &model.Wine{
		Name:           req.Name,
		Type:           req.Type,
		Vintage:        req.Vintage,
		Country:        req.Country,
		Region:         req.Region,
		Winery:         req.Winery,
		Price:          req.Price,
		ImageURL:       req.ImageURL,
		GrapeVarieties: pq.StringArray(req.GrapeVarieties),
	}
	item := &model.CellarWine{
		UserID:          userID,
		Quantity:        quantity,
		StorageLocation: req.StorageLocation,
		Notes:           req.Notes,
		Mode:            model.ModeLibrary,
	}

	if err := s.cellarRepo.CreateWithWine(wine, item); err != nil {
		logger.Error("Failed to add wine to cellar", err, map[string]interface{}{
			"user_id": userID,
			"name":    req.Name,
		})
		return nil, err
	}

	wineID := wine.ID
	activity := &model.CommunityActivity{
		UserID:       userID,
		ActivityType: model.ActivityAdded,
		WineID:       &wineID,
		WineName:     wine.Name,
	}
	if err := s.activityService.Record(activity); err != nil {
		// The add already stands; only the feed misses an entry.
		logger.Error("Failed to record added-wine activity", err, map[string]interface{}{
			"user_id": userID,
			"wine_id": wine.ID,
		})
	}

	logger.Info("Wine added to cellar", map[string]interface{}{
		"user_id":        userID,
		"wine_id":        wine.ID,
		"cellar_wine_id": item.ID,
		"name":           wine.Name,
	})
	return item, nil
}

// UpdateCellarWine patches the ownership fields of a cellar row
func (s *cellarService) UpdateCellarWine(userID, id uint, req model.UpdateCellarWineRequest) (*model.CellarWine, error) {
	updates := map[string]interface{}{}
	if req.IsFavorite != nil {
		updates["is_favorite"] = *req.IsFavorite
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.PurchaseDate != nil {
		updates["purchase_date"] = *req.PurchaseDate
	}
	if req.StorageLocation != nil {
		updates["storage_location"] = *req.StorageLocation
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Mode != nil {
		if *req.Mode != model.ModeLibrary && *req.Mode != model.ModeTasted {
			return nil, ErrInvalidCellarMode
		}
		updates["mode"] = *req.Mode
	}

	if len(updates) == 0 {
		return s.GetCellarWine(userID, id)
	}

	item, err := s.cellarRepo.Update(id, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCellarWineNotFound
		}
		logger.Error("Failed to update cellar wine", err, map[string]interface{}{
			"user_id":        userID,
			"cellar_wine_id": id,
		})
		return nil, err
	}

	logger.Info("Cellar wine updated", map[string]interface{}{
		"user_id":        userID,
		"cellar_wine_id": id,
	})
	return item, nil
}

// RemoveWine deletes an ownership row after validating the removal
// reason, then logs a "removed" activity with the denormalized wine
// name. The underlying wine and its tastings are kept. A concurrent
// second removal of the same row sees zero affected rows and is
// reported as not-found without a second activity entry.
func (s *cellarService) RemoveWine(userID, id uint, reason model.RemovalReason) error {
	if !model.IsValidRemovalReason(reason) {
		logger.Warn("Rejected removal with invalid reason", map[string]interface{}{
			"user_id":        userID,
			"cellar_wine_id": id,
			"reason":         reason,
		})
		return ErrInvalidRemovalReason
	}

	item, err := s.cellarRepo.FindByIDAndUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCellarWineNotFound
		}
		return err
	}

	rows, err := s.cellarRepo.Delete(id, userID)
	if err != nil {
		logger.Error("Failed to remove wine from cellar", err, map[string]interface{}{
			"user_id":        userID,
			"cellar_wine_id": id,
		})
		return err
	}
	if rows == 0 {
		// Already removed by a concurrent request; that request owns
		// the activity entry.
		logger.Warn("Cellar wine already removed", map[string]interface{}{
			"user_id":        userID,
			"cellar_wine_id": id,
		})
		return ErrCellarWineNotFound
	}

	wineID := item.WineID
	activity := &model.CommunityActivity{
		UserID:       userID,
		ActivityType: model.ActivityRemoved,
		WineID:       &wineID,
		WineName:     item.Wine.Name,
		Reason:       string(reason),
	}
	if err := s.activityService.Record(activity); err != nil {
		logger.Error("Failed to record removed-wine activity", err, map[string]interface{}{
			"user_id": userID,
			"wine_id": item.WineID,
		})
	}

	logger.Info("Wine removed from cellar", map[string]interface{}{
		"user_id":        userID,
		"cellar_wine_id": id,
		"wine_name":      item.Wine.Name,
		"reason":         reason,
	})
	return nil
}

// denormalize joins each cellar row with its latest tasting. Tastings
// are fetched once for the user; they arrive ordered by tasting date
// descending, so the first one seen per wine is the latest.
func (s *cellarService) denormalize(userID uint, items []model.CellarWine) []CellarEntry {
	entries := make([]CellarEntry, 0, len(items))

	latest := map[uint]*model.Tasting{}
	if tastings, err := s.tastingRepo.FindByUserID(userID); err != nil {
		logger.Warn("Failed to fetch tastings for cellar view, ratings omitted", map[string]interface{}{
			"user_id": userID,
		})
	} else {
		for i := range tastings {
			tasting := &tastings[i]
			if _, seen := latest[tasting.WineID]; !seen {
				latest[tasting.WineID] = tasting
			}
		}
	}

	for _, item := range items {
		entry := CellarEntry{CellarWine: item}
		if tasting, ok := latest[item.WineID]; ok {
			if tasting.Rating != nil {
				entry.Rating = *tasting.Rating
			}
			date := tasting.TastingDate
			entry.TastingDate = &date
		}
		entries = append(entries, entry)
	}
	return entries
}
