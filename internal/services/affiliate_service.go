package services

import (
	"gorm.io/gorm"

	"edustore-service/internal/models"
)

// AffiliateService owns referral links and their append-only click events.
// Commission crediting lives with settlement; this service only tracks
// attribution.
type AffiliateService struct {
	DB    *gorm.DB
	Users *UserService
}

func NewAffiliateService(db *gorm.DB, users *UserService) *AffiliateService {
	return &AffiliateService{DB: db, Users: users}
}

// linkFor loads the link for (user, item, type), creating it on first use.
// Runs on the caller's handle so settlement can keep it transactional.
func linkFor(tx *gorm.DB, userID, itemID int, itemType string) (models.AffiliateLink, error) {
	var link models.AffiliateLink
	err := tx.Where("user_id = ? AND item_id = ? AND item_type = ?", userID, itemID, itemType).First(&link).Error
	if err == gorm.ErrRecordNotFound {
		link = models.AffiliateLink{UserID: userID, ItemID: itemID, ItemType: itemType}
		err = tx.Create(&link).Error
	}
	return link, err
}

// CreateLink returns the user's link for an item, creating it if absent.
// Idempotent; a second call returns the existing link.
func (s *AffiliateService) CreateLink(userID, itemID int, itemType string) (*models.AffiliateLink, error) {
	if itemType != models.ItemTypeCourse && itemType != models.ItemTypeEbook {
		return nil, ErrInvalidItemType
	}
	link, err := linkFor(s.DB, userID, itemID, itemType)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// RecordClick appends a click event for a referral visit, creating the link
// lazily when the referrer shared a URL before opening a link themselves.
func (s *AffiliateService) RecordClick(refCode string, itemID int, itemType string) (*models.AffiliateLink, error) {
	user, err := s.Users.GetByRefCode(refCode)
	if err != nil {
		return nil, ErrReferrerNotFound
	}

	link, err := linkFor(s.DB, user.ID, itemID, itemType)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Create(&models.AffiliateLinkClick{LinkID: link.ID}).Error; err != nil {
		return nil, err
	}
	return &link, nil
}
