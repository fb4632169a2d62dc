package services

import (
	"testing"

	"edustore-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func newAffiliateService() *AffiliateService {
	return NewAffiliateService(testDB, NewUserService(testDB, "test-secret"))
}

func TestCreateLink_Idempotent(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newAffiliateService()
	user := seedUser(t, "affiliate", 0)
	course := seedCourse(t, 500, 100)

	first, err := svc.CreateLink(user.ID, course.ID, models.ItemTypeCourse)
	if err != nil {
		t.Fatalf("CreateLink failed: %v", err)
	}

	second, err := svc.CreateLink(user.ID, course.ID, models.ItemTypeCourse)
	assert.Nil(t, err)
	assert.Equal(t, first.ID, second.ID)

	var links int64
	testDB.Model(&models.AffiliateLink{}).Count(&links)
	assert.Equal(t, int64(1), links)
}

func TestCreateLink_InvalidItemType(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newAffiliateService()
	user := seedUser(t, "affiliate", 0)

	_, err := svc.CreateLink(user.ID, 1, "webinar")
	assert.Equal(t, ErrInvalidItemType, err)
}

func TestRecordClick_AppendsEvents(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newAffiliateService()
	user := seedUser(t, "affiliate", 0)
	course := seedCourse(t, 500, 100)

	// The link did not exist yet; the first click creates it lazily.
	link, err := svc.RecordClick(user.RefCode, course.ID, models.ItemTypeCourse)
	if err != nil {
		t.Fatalf("RecordClick failed: %v", err)
	}

	_, err = svc.RecordClick(user.RefCode, course.ID, models.ItemTypeCourse)
	assert.Nil(t, err)

	var clicks int64
	testDB.Model(&models.AffiliateLinkClick{}).Where("link_id = ?", link.ID).Count(&clicks)
	assert.Equal(t, int64(2), clicks)
}

func TestRecordClick_UnknownRefCode(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := newAffiliateService()
	_, err := svc.RecordClick("no-such-code", 1, models.ItemTypeCourse)
	assert.Equal(t, ErrReferrerNotFound, err)

	var clicks int64
	testDB.Model(&models.AffiliateLinkClick{}).Count(&clicks)
	assert.Equal(t, int64(0), clicks)
}
