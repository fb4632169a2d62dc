package services

import (
	"gorm.io/gorm"

	"edustore-service/internal/models"
)

// Item is the catalog snapshot the purchase flow consumes: whichever of
// course or e-book it came from, only these fields matter to settlement.
type Item struct {
	ID         int     `json:"id"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Commission float64 `json:"commission"`
	Thumbnail  string  `json:"thumbnail"`
}

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// GetItem resolves an item by id and type. Hidden items resolve like missing
// ones so unlisted content cannot be bought through a stale link.
func (s *CatalogService) GetItem(itemID int, itemType string) (*Item, error) {
	return getItemTx(s.DB, itemID, itemType)
}

// getItemTx is the transaction-scoped lookup the settlement engine uses when
// it needs the commission amount inside its own unit of work.
func getItemTx(tx *gorm.DB, itemID int, itemType string) (*Item, error) {
	switch itemType {
	case models.ItemTypeCourse:
		var course models.Course
		if err := tx.Where("id = ? AND visible = ?", itemID, true).First(&course).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrItemNotFound
			}
			return nil, err
		}
		return &Item{
			ID:         course.ID,
			Type:       models.ItemTypeCourse,
			Title:      course.Title,
			Price:      course.Price,
			Commission: course.Commission,
			Thumbnail:  course.Thumbnail,
		}, nil
	case models.ItemTypeEbook:
		var ebook models.EBook
		if err := tx.Where("id = ? AND visible = ?", itemID, true).First(&ebook).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrItemNotFound
			}
			return nil, err
		}
		return &Item{
			ID:         ebook.ID,
			Type:       models.ItemTypeEbook,
			Title:      ebook.Title,
			Price:      ebook.Price,
			Commission: ebook.Commission,
			Thumbnail:  ebook.Thumbnail,
		}, nil
	default:
		return nil, ErrInvalidItemType
	}
}

func (s *CatalogService) ListCourses() ([]models.Course, error) {
	var courses []models.Course
	err := s.DB.Where("visible = ?", true).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (s *CatalogService) ListEbooks() ([]models.EBook, error) {
	var ebooks []models.EBook
	err := s.DB.Where("visible = ?", true).Order("created_at DESC").Find(&ebooks).Error
	return ebooks, err
}

func (s *CatalogService) GetCoupon(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.DB.Where("code = ?", code).First(&coupon).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return &coupon, nil
}
