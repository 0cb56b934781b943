package services

import (
	"context"
	"fmt"
	"time"

	"mediconnect_backend/internal/models"
	"mediconnect_backend/internal/repositories"
)

// In-memory repository fakes. They mirror the Postgres-backed
// implementations closely enough for service behavior: the same
// sentinel errors, the same cap and uniqueness checks.

type fakeUserRepo struct {
	seq   int
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	cp := *token
	r.tokens[token.Token] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrRefreshTokenNotFound
	}
	cp := *rt
	return &cp, nil
}

func (r *fakeRefreshTokenRepo) Delete(_ context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteForUser(_ context.Context, userID string) error {
	for k, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var deleted int64
	now := time.Now()
	for k, rt := range r.tokens {
		if now.After(rt.ExpiresAt) {
			delete(r.tokens, k)
			deleted++
		}
	}
	return deleted, nil
}

type fakeProfileRepo struct {
	pharmacists map[string]*models.PharmacistProfile
	stores      map[string]*models.StoreProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		pharmacists: make(map[string]*models.PharmacistProfile),
		stores:      make(map[string]*models.StoreProfile),
	}
}

func (r *fakeProfileRepo) CreatePharmacistProfile(_ context.Context, profile *models.PharmacistProfile) error {
	if profile.ID == "" {
		profile.ID = "pharmacist-profile-" + profile.UserID
	}
	profile.CreatedAt = time.Now()
	cp := *profile
	r.pharmacists[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) FindPharmacistByUserID(_ context.Context, userID string) (*models.PharmacistProfile, error) {
	p, ok := r.pharmacists[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) UpdatePharmacistProfile(_ context.Context, profile *models.PharmacistProfile) error {
	p, ok := r.pharmacists[profile.UserID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	// Personal fields only: the verification triad stays untouched.
	p.Name = profile.Name
	p.Phone = profile.Phone
	p.ExperienceYears = profile.ExperienceYears
	p.Software = profile.Software
	p.LicenseNumber = profile.LicenseNumber
	return nil
}

func (r *fakeProfileRepo) SetPharmacistVerification(_ context.Context, userID string, status models.VerificationStatus, remark string) error {
	p, ok := r.pharmacists[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.IsVerified = status == models.VerificationApproved
	p.VerificationStatus = status
	p.VerificationRemark = remark
	return nil
}

func (r *fakeProfileRepo) ListPendingPharmacists(_ context.Context) ([]models.PharmacistProfile, error) {
	var pending []models.PharmacistProfile
	for _, p := range r.pharmacists {
		if p.VerificationStatus == models.VerificationPending {
			pending = append(pending, *p)
		}
	}
	return pending, nil
}

func (r *fakeProfileRepo) CreateStoreProfile(_ context.Context, profile *models.StoreProfile) error {
	if profile.ID == "" {
		profile.ID = "store-profile-" + profile.UserID
	}
	profile.CreatedAt = time.Now()
	cp := *profile
	r.stores[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) FindStoreByUserID(_ context.Context, userID string) (*models.StoreProfile, error) {
	p, ok := r.stores[userID]
	if !ok {
		return nil, repositories.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) UpdateStoreProfile(_ context.Context, profile *models.StoreProfile) error {
	p, ok := r.stores[profile.UserID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.StoreName = profile.StoreName
	p.Phone = profile.Phone
	p.Address = profile.Address
	p.City = profile.City
	p.Timings = profile.Timings
	return nil
}

func (r *fakeProfileRepo) SetStoreVerification(_ context.Context, userID string, status models.VerificationStatus, remark string) error {
	p, ok := r.stores[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.IsVerified = status == models.VerificationApproved
	p.VerificationStatus = status
	p.VerificationRemark = remark
	return nil
}

func (r *fakeProfileRepo) SetStoreTrainingEligible(_ context.Context, userID string, eligible bool) error {
	p, ok := r.stores[userID]
	if !ok {
		return repositories.ErrProfileNotFound
	}
	p.IsTrainingEligible = eligible
	return nil
}

func (r *fakeProfileRepo) ListPendingStores(_ context.Context) ([]models.StoreProfile, error) {
	var pending []models.StoreProfile
	for _, p := range r.stores {
		if p.VerificationStatus == models.VerificationPending {
			pending = append(pending, *p)
		}
	}
	return pending, nil
}

type fakeJobRepo struct {
	seq  int
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (r *fakeJobRepo) countActive(ownerID, excludeJobID string, now time.Time) int {
	count := 0
	for _, j := range r.jobs {
		if j.OwnerID == ownerID && j.ID != excludeJobID && j.CountsAsActive(now) {
			count++
		}
	}
	return count
}

func (r *fakeJobRepo) CreateActiveJob(_ context.Context, job *models.Job) error {
	if r.countActive(job.OwnerID, "", time.Now()) >= models.MaxActiveJobs {
		return repositories.ErrJobLimitReached
	}
	r.seq++
	job.ID = fmt.Sprintf("job-%d", r.seq)
	job.CreatedAt = time.Now()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *fakeJobRepo) Reactivate(_ context.Context, jobID, ownerID string) error {
	j, ok := r.jobs[jobID]
	if !ok || j.OwnerID != ownerID {
		return repositories.ErrJobNotFound
	}
	if r.countActive(ownerID, jobID, time.Now()) >= models.MaxActiveJobs {
		return repositories.ErrJobLimitReached
	}
	j.Status = models.JobStatusActive
	return nil
}

func (r *fakeJobRepo) FindByID(_ context.Context, id string) (*models.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *fakeJobRepo) SetStatus(_ context.Context, jobID string, status models.JobStatus, closedAt *time.Time) error {
	j, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.Status = status
	j.ClosedAt = closedAt
	return nil
}

func (r *fakeJobRepo) SetDisabledByAdmin(_ context.Context, jobID string, disabled bool) error {
	j, ok := r.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.DisabledByAdmin = disabled
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return repositories.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Job, error) {
	var jobs []models.Job
	for _, j := range r.jobs {
		if j.OwnerID == ownerID {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) ListVisible(_ context.Context) ([]models.Job, error) {
	now := time.Now()
	var jobs []models.Job
	for _, j := range r.jobs {
		if j.CountsAsActive(now) {
			jobs = append(jobs, *j)
		}
	}
	return jobs, nil
}

func (r *fakeJobRepo) CountActiveByOwner(_ context.Context, ownerID string) (int64, error) {
	return int64(r.countActive(ownerID, "", time.Now())), nil
}

type fakeApplicationRepo struct {
	seq          int
	applications []*models.JobApplication
	pharmacists  *fakeProfileRepo
	jobs         *fakeJobRepo
}

func newFakeApplicationRepo(profiles *fakeProfileRepo, jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{pharmacists: profiles, jobs: jobs}
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *models.JobApplication) error {
	for _, a := range r.applications {
		if a.JobID == application.JobID && a.PharmacistID == application.PharmacistID {
			return repositories.ErrApplicationExists
		}
	}
	r.seq++
	application.ID = fmt.Sprintf("application-%d", r.seq)
	application.CreatedAt = time.Now()
	cp := *application
	r.applications = append(r.applications, &cp)
	return nil
}

func (r *fakeApplicationRepo) ExistsForPair(_ context.Context, jobID, pharmacistID string) (bool, error) {
	for _, a := range r.applications {
		if a.JobID == jobID && a.PharmacistID == pharmacistID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeApplicationRepo) ListByJob(_ context.Context, jobID string) ([]models.JobApplication, error) {
	var result []models.JobApplication
	for _, a := range r.applications {
		if a.JobID != jobID {
			continue
		}
		cp := *a
		if r.pharmacists != nil {
			if p, ok := r.pharmacists.pharmacists[a.PharmacistID]; ok {
				pcp := *p
				cp.Pharmacist = &pcp
			}
		}
		result = append(result, cp)
	}
	return result, nil
}

func (r *fakeApplicationRepo) ListByPharmacist(_ context.Context, pharmacistID string) ([]models.JobApplication, error) {
	var result []models.JobApplication
	for _, a := range r.applications {
		if a.PharmacistID != pharmacistID {
			continue
		}
		cp := *a
		if r.jobs != nil {
			if j, ok := r.jobs.jobs[a.JobID]; ok {
				jcp := *j
				cp.Job = &jcp
			}
		}
		result = append(result, cp)
	}
	return result, nil
}

func (r *fakeApplicationRepo) CountByJob(_ context.Context, jobID string) (int64, error) {
	var count int64
	for _, a := range r.applications {
		if a.JobID == jobID {
			count++
		}
	}
	return count, nil
}

type fakeTrainingRepo struct {
	seq      int
	slots    map[string]*models.TrainingSlot
	requests map[string]*models.TrainingRequest
}

func newFakeTrainingRepo() *fakeTrainingRepo {
	return &fakeTrainingRepo{
		slots:    make(map[string]*models.TrainingSlot),
		requests: make(map[string]*models.TrainingRequest),
	}
}

func (r *fakeTrainingRepo) CreateSlots(_ context.Context, slots []models.TrainingSlot) error {
	for i := range slots {
		r.seq++
		slots[i].ID = fmt.Sprintf("slot-%d", r.seq)
		slots[i].CreatedAt = time.Now()
		cp := slots[i]
		r.slots[cp.ID] = &cp
	}
	return nil
}

func (r *fakeTrainingRepo) FindSlotByID(_ context.Context, id string) (*models.TrainingSlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, repositories.ErrTrainingSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeTrainingRepo) ListSlotsByOwner(_ context.Context, ownerID, month string) ([]models.TrainingSlot, error) {
	var result []models.TrainingSlot
	for _, s := range r.slots {
		if s.StoreOwnerID != ownerID {
			continue
		}
		if month != "" && s.Month != month {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (r *fakeTrainingRepo) SetSlotStatus(_ context.Context, slotID string, status models.TrainingSlotStatus) error {
	s, ok := r.slots[slotID]
	if !ok {
		return repositories.ErrTrainingSlotNotFound
	}
	s.Status = status
	return nil
}

func (r *fakeTrainingRepo) CreateRequest(_ context.Context, request *models.TrainingRequest) error {
	r.seq++
	request.ID = fmt.Sprintf("request-%d", r.seq)
	request.CreatedAt = time.Now()
	cp := *request
	r.requests[request.ID] = &cp
	return nil
}

func (r *fakeTrainingRepo) FindRequestByID(_ context.Context, id string) (*models.TrainingRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, repositories.ErrTrainingRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeTrainingRepo) ScheduleRequest(_ context.Context, requestID string, slotID *string, appointmentAt time.Time) error {
	req, ok := r.requests[requestID]
	if !ok {
		return repositories.ErrTrainingRequestNotFound
	}
	if slotID != nil {
		s, ok := r.slots[*slotID]
		if !ok || s.Status != models.TrainingSlotOpen {
			return repositories.ErrTrainingSlotNotFound
		}
		s.Status = models.TrainingSlotAssigned
	}
	req.SlotID = slotID
	req.AppointmentAt = &appointmentAt
	req.StoreStatus = models.TrainingStatusScheduled
	req.PharmacistResponse = models.PharmacistResponsePending
	return nil
}

func (r *fakeTrainingRepo) SetHandshake(_ context.Context, requestID string, storeStatus models.TrainingRequestStatus, response models.PharmacistResponse) error {
	req, ok := r.requests[requestID]
	if !ok {
		return repositories.ErrTrainingRequestNotFound
	}
	req.StoreStatus = storeStatus
	req.PharmacistResponse = response
	return nil
}

func (r *fakeTrainingRepo) ListRequestsByStore(_ context.Context, storeOwnerID string) ([]models.TrainingRequest, error) {
	var result []models.TrainingRequest
	for _, req := range r.requests {
		if req.StoreOwnerID == storeOwnerID {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (r *fakeTrainingRepo) ListRequestsByPharmacist(_ context.Context, pharmacistID string) ([]models.TrainingRequest, error) {
	var result []models.TrainingRequest
	for _, req := range r.requests {
		if req.PharmacistID == pharmacistID {
			result = append(result, *req)
		}
	}
	return result, nil
}

func (r *fakeTrainingRepo) HasOpenRequest(_ context.Context, pharmacistID, storeOwnerID string) (bool, error) {
	for _, req := range r.requests {
		if req.PharmacistID == pharmacistID && req.StoreOwnerID == storeOwnerID &&
			req.PharmacistResponse != models.PharmacistResponseConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTrainingRepo) HasConfirmedRequest(_ context.Context, pharmacistID, storeOwnerID string) (bool, error) {
	for _, req := range r.requests {
		if req.PharmacistID == pharmacistID && req.StoreOwnerID == storeOwnerID && req.IsConfirmed() {
			return true, nil
		}
	}
	return false, nil
}
