package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"edustore-service/internal/models"
	"edustore-service/pkg/common"
)

type UserService struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewUserService(db *gorm.DB, jwtSecret string) *UserService {
	return &UserService{DB: db, JWTSecret: jwtSecret}
}

type RegisterDTO struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register creates a permanent user with its zero-balance ledger account.
func (s *UserService) Register(data RegisterDTO) (*models.User, error) {
	var existing models.User
	if err := s.DB.Where("email = ?", data.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     data.Name,
		Email:    data.Email,
		Phone:    data.Phone,
		Password: string(hashed),
		RefCode:  common.ShortCode(),
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Account{UserID: user.ID}).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// PromoteTempUser turns a temporary registration into a permanent user inside
// the caller's transaction. The stored password is already hashed.
func PromoteTempUser(tx *gorm.DB, temp *models.TempUser) (*models.User, error) {
	user := models.User{
		Name:     temp.Name,
		Email:    temp.Email,
		Phone:    temp.Phone,
		Password: temp.Password,
		RefCode:  common.ShortCode(),
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, err
	}
	if err := tx.Create(&models.Account{UserID: user.ID}).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and issues a bearer token.
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", nil, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrUserNotFound
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(30 * 24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(s.JWTSecret))
	if err != nil {
		return "", nil, err
	}
	return signed, &user, nil
}

func (s *UserService) GetByID(id int) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByRefCode resolves the public referral code printed in affiliate links.
func (s *UserService) GetByRefCode(refCode string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("ref_code = ?", refCode).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpsertTempUser stages credentials for a buyer who has no account yet. A
// second checkout with the same email replaces the staged credentials.
func (s *UserService) UpsertTempUser(data RegisterDTO) (*models.TempUser, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var temp models.TempUser
	err = s.DB.Where("email = ?", data.Email).First(&temp).Error
	if err == gorm.ErrRecordNotFound {
		temp = models.TempUser{
			Email:    data.Email,
			Password: string(hashed),
			Name:     data.Name,
			Phone:    data.Phone,
		}
		if err := s.DB.Create(&temp).Error; err != nil {
			return nil, err
		}
		return &temp, nil
	}
	if err != nil {
		return nil, err
	}

	temp.Password = string(hashed)
	temp.Name = data.Name
	temp.Phone = data.Phone
	if err := s.DB.Save(&temp).Error; err != nil {
		return nil, err
	}
	return &temp, nil
}

// ListUsers is the admin directory view. Each row carries a flag for users
// holding a dummy purchase awaiting manual attachment.
func (s *UserService) ListUsers(page, limit int, search string) (common.PaginationResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}

	query := s.DB.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR ref_code LIKE ?", like, like, like)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		return common.PaginationResult{}, err
	}

	type userRow struct {
		models.User
		HasDummyPurchase bool `json:"has_dummy_purchase"`
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		var dummy models.Purchase
		has := s.DB.Where("buyer_user_id IS NULL AND referrer_user_id = ?", u.ID).First(&dummy).Error == nil
		rows = append(rows, userRow{User: u, HasDummyPurchase: has})
	}

	return common.PaginateResponse(rows, total, page, limit, "Users fetched successfully"), nil
}
