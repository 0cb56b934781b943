package services

import (
	"context"
	"testing"

	"mediconnect_backend/internal/apperrors"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verificationFixture struct {
	svc         VerificationService
	profileRepo *fakeProfileRepo
	userRepo    *fakeUserRepo
	mail        *email.MockProvider
}

func newVerificationFixture() *verificationFixture {
	profileRepo := newFakeProfileRepo()
	userRepo := newFakeUserRepo()
	mail := email.NewMockProvider()

	return &verificationFixture{
		svc:         NewVerificationService(profileRepo, userRepo, mail),
		profileRepo: profileRepo,
		userRepo:    userRepo,
		mail:        mail,
	}
}

func TestReviewPharmacistKeepsFlagAndStatusInStep(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()

	require.NoError(t, f.profileRepo.CreatePharmacistProfile(ctx, &models.PharmacistProfile{
		UserID:             "pharmacist-1",
		Name:               "Asel",
		LicenseNumber:      "PH-1001",
		VerificationStatus: models.VerificationPending,
	}))

	err := f.svc.ReviewPharmacist(ctx, "pharmacist-1", &dto.ReviewVerificationRequest{
		Decision: models.VerificationApproved,
	})
	require.NoError(t, err)

	p, err := f.profileRepo.FindPharmacistByUserID(ctx, "pharmacist-1")
	require.NoError(t, err)
	assert.True(t, p.IsVerified)
	assert.Equal(t, models.VerificationApproved, p.VerificationStatus)

	// Rejection clears the flag in the same write.
	err = f.svc.ReviewPharmacist(ctx, "pharmacist-1", &dto.ReviewVerificationRequest{
		Decision: models.VerificationRejected,
		Remark:   "license number illegible",
	})
	require.NoError(t, err)

	p, err = f.profileRepo.FindPharmacistByUserID(ctx, "pharmacist-1")
	require.NoError(t, err)
	assert.False(t, p.IsVerified)
	assert.Equal(t, models.VerificationRejected, p.VerificationStatus)
	assert.Equal(t, "license number illegible", p.VerificationRemark)
}

func TestReviewStore(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()

	require.NoError(t, f.profileRepo.CreateStoreProfile(ctx, &models.StoreProfile{
		UserID:             "owner-1",
		StoreName:          "City Pharmacy",
		VerificationStatus: models.VerificationPending,
	}))

	err := f.svc.ReviewStore(ctx, "owner-1", &dto.ReviewVerificationRequest{
		Decision: models.VerificationApproved,
	})
	require.NoError(t, err)

	p, err := f.profileRepo.FindStoreByUserID(ctx, "owner-1")
	require.NoError(t, err)
	assert.True(t, p.IsVerified)
	assert.Equal(t, models.VerificationApproved, p.VerificationStatus)
}

func TestReviewMissingProfile(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()

	err := f.svc.ReviewPharmacist(ctx, "missing", &dto.ReviewVerificationRequest{
		Decision: models.VerificationApproved,
	})
	assert.Equal(t, apperrors.ErrProfileNotFound, err)

	err = f.svc.ReviewStore(ctx, "missing", &dto.ReviewVerificationRequest{
		Decision: models.VerificationApproved,
	})
	assert.Equal(t, apperrors.ErrProfileNotFound, err)
}

func TestProfileEditDoesNotResetVerification(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()
	profileSvc := NewProfileService(f.profileRepo, f.userRepo)

	require.NoError(t, f.userRepo.Create(ctx, &models.User{
		BaseModel:    models.BaseModel{ID: "pharmacist-1"},
		Email:        "asel@pharm.kz",
		PasswordHash: "x",
		Role:         models.UserRolePharmacist,
	}))

	_, err := profileSvc.SavePharmacistProfile(ctx, "pharmacist-1", &dto.SavePharmacistProfileRequest{
		Name:          "Asel",
		LicenseNumber: "PH-1001",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.ReviewPharmacist(ctx, "pharmacist-1", &dto.ReviewVerificationRequest{
		Decision: models.VerificationApproved,
	}))

	// Editing personal fields, including the license number, leaves the
	// admin decision standing.
	_, err = profileSvc.SavePharmacistProfile(ctx, "pharmacist-1", &dto.SavePharmacistProfileRequest{
		Name:            "Asel K.",
		LicenseNumber:   "PH-2002",
		ExperienceYears: 4,
	})
	require.NoError(t, err)

	p, err := f.profileRepo.FindPharmacistByUserID(ctx, "pharmacist-1")
	require.NoError(t, err)
	assert.True(t, p.IsVerified)
	assert.Equal(t, models.VerificationApproved, p.VerificationStatus)
	assert.Equal(t, "PH-2002", p.LicenseNumber)
}

func TestSetStoreTrainingEligible(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()

	require.NoError(t, f.profileRepo.CreateStoreProfile(ctx, &models.StoreProfile{
		UserID:    "owner-1",
		StoreName: "City Pharmacy",
	}))

	require.NoError(t, f.svc.SetStoreTrainingEligible(ctx, "owner-1", true))
	p, err := f.profileRepo.FindStoreByUserID(ctx, "owner-1")
	require.NoError(t, err)
	assert.True(t, p.IsTrainingEligible)

	require.NoError(t, f.svc.SetStoreTrainingEligible(ctx, "owner-1", false))
	p, err = f.profileRepo.FindStoreByUserID(ctx, "owner-1")
	require.NoError(t, err)
	assert.False(t, p.IsTrainingEligible)
}

func TestListPendingQueues(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()

	require.NoError(t, f.profileRepo.CreatePharmacistProfile(ctx, &models.PharmacistProfile{
		UserID:             "pharmacist-1",
		Name:               "Asel",
		LicenseNumber:      "PH-1001",
		VerificationStatus: models.VerificationPending,
	}))
	require.NoError(t, f.profileRepo.CreatePharmacistProfile(ctx, &models.PharmacistProfile{
		UserID:             "pharmacist-2",
		Name:               "Dana",
		LicenseNumber:      "PH-1002",
		IsVerified:         true,
		VerificationStatus: models.VerificationApproved,
	}))

	pending, err := f.svc.ListPendingPharmacists(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pharmacist-1", pending[0].UserID)
}

func TestReviewDecisionSendsEmail(t *testing.T) {
	f := newVerificationFixture()
	ctx := context.Background()

	require.NoError(t, f.userRepo.Create(ctx, &models.User{
		BaseModel:    models.BaseModel{ID: "pharmacist-1"},
		Email:        "asel@pharm.kz",
		PasswordHash: "x",
		Role:         models.UserRolePharmacist,
	}))
	require.NoError(t, f.profileRepo.CreatePharmacistProfile(ctx, &models.PharmacistProfile{
		UserID:             "pharmacist-1",
		Name:               "Asel",
		LicenseNumber:      "PH-1001",
		VerificationStatus: models.VerificationPending,
	}))

	require.NoError(t, f.svc.ReviewPharmacist(ctx, "pharmacist-1", &dto.ReviewVerificationRequest{
		Decision: models.VerificationRejected,
		Remark:   "blurred scan",
	}))

	require.Len(t, f.mail.Sent, 1)
	assert.Equal(t, []string{"asel@pharm.kz"}, f.mail.Sent[0].To)
	assert.Contains(t, f.mail.Sent[0].Body, "rejected")
	assert.Contains(t, f.mail.Sent[0].Body, "blurred scan")
}
