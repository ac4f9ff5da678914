package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/models/dto"
	"github.com/campuslink/jobportal/internal/app/repositories"
	"github.com/campuslink/jobportal/internal/pkg/apperrors"
	"github.com/campuslink/jobportal/internal/pkg/auth"
	"github.com/campuslink/jobportal/internal/pkg/email"
	"github.com/campuslink/jobportal/internal/pkg/helpers"
	"github.com/campuslink/jobportal/internal/pkg/logger"
	"github.com/campuslink/jobportal/internal/pkg/spreadsheet"
	"github.com/campuslink/jobportal/internal/pkg/validation"
)

// AdminService handles account administration, skill and category
// definitions, platform settings and the bulk spreadsheet pipelines.
type AdminService struct {
	userRepo      *repositories.UserRepository
	studentRepo   *repositories.StudentRepository
	schoolRepo    *repositories.SchoolRepository
	coreSkillRepo *repositories.CoreSkillRepository
	categoryRepo  *repositories.CategoryRepository
	settingRepo   *repositories.SettingRepository
	helpRepo      *repositories.HelpRequestRepository
	tokenRepo     *repositories.TokenRepository
	emailService  email.EmailService
}

// NewAdminService creates a new admin service instance
func NewAdminService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	schoolRepo *repositories.SchoolRepository,
	coreSkillRepo *repositories.CoreSkillRepository,
	categoryRepo *repositories.CategoryRepository,
	settingRepo *repositories.SettingRepository,
	helpRepo *repositories.HelpRequestRepository,
	tokenRepo *repositories.TokenRepository,
	emailService email.EmailService,
) *AdminService {
	return &AdminService{
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		schoolRepo:    schoolRepo,
		coreSkillRepo: coreSkillRepo,
		categoryRepo:  categoryRepo,
		settingRepo:   settingRepo,
		helpRepo:      helpRepo,
		tokenRepo:     tokenRepo,
		emailService:  emailService,
	}
}

// --- Users ---

// ListUsers returns a page of accounts, optionally filtered by role
func (s *AdminService) ListUsers(ctx context.Context, role *models.RoleType, page, size int) ([]*models.User, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userRepo.List(ctx, role, offset, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return users, helpers.NewPaginationInfo(total, page, limit), nil
}

// GetUser returns a single account
func (s *AdminService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateUser creates an account with the given credentials and sends the
// welcome email. Duplicate emails come back as ErrEmailAlreadyExists.
func (s *AdminService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		RoleType: req.RoleType,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	store := userStoreAdapter{users: s.userRepo, students: s.studentRepo, schools: s.schoolRepo}
	if err := createRoleProfile(ctx, store, user); err != nil {
		// onboarding recreates a missing profile
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to create profile for new user")
	}

	if err := s.emailService.Send(ctx, user.Email, email.TemplateWelcome, map[string]string{
		"name":     user.Name,
		"email":    user.Email,
		"password": req.Password,
	}); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
	}
	return user, nil
}

// UpdateUser applies name/email/active changes. Deactivating an account
// also revokes its refresh tokens.
func (s *AdminService) UpdateUser(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*models.User, error) {
	if err := s.userRepo.Update(ctx, id, req.Name, req.Email, req.IsActive); err != nil {
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive {
		if err := s.tokenRepo.RevokeAllForUser(ctx, id); err != nil {
			logger.Warn().Err(err).Int64("userID", id).Msg("Failed to revoke tokens for deactivated user")
		}
	}
	return s.userRepo.GetByID(ctx, id)
}

// DeleteUser removes an account and, through cascades, everything it owns
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	return s.userRepo.Delete(ctx, id)
}

// bulkUserStore is the slice of the repositories the user import needs.
type bulkUserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	CreateStudent(ctx context.Context, student *models.Student) error
	CreateSchool(ctx context.Context, school *models.School) error
}

type userStoreAdapter struct {
	users    *repositories.UserRepository
	students *repositories.StudentRepository
	schools  *repositories.SchoolRepository
}

func (a userStoreAdapter) EmailExists(ctx context.Context, email string) (bool, error) {
	return a.users.EmailExists(ctx, email)
}

func (a userStoreAdapter) Create(ctx context.Context, user *models.User) error {
	return a.users.Create(ctx, user)
}

func (a userStoreAdapter) CreateStudent(ctx context.Context, student *models.Student) error {
	return a.students.Create(ctx, student)
}

func (a userStoreAdapter) CreateSchool(ctx context.Context, school *models.School) error {
	return a.schools.Create(ctx, school)
}

// BulkCreateUsers imports accounts from an xlsx workbook with "name" and
// "email" columns. Row failures are reported individually and never abort
// the batch; each created account gets a temporary password by email.
func (s *AdminService) BulkCreateUsers(ctx context.Context, r io.Reader, role models.RoleType) (*dto.BulkResult, error) {
	rows, err := spreadsheet.ReadRows(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	store := userStoreAdapter{users: s.userRepo, students: s.studentRepo, schools: s.schoolRepo}
	return importUsers(ctx, rows, role, store, s.emailService), nil
}

func importUsers(ctx context.Context, rows []spreadsheet.Row, role models.RoleType, store bulkUserStore, mailer email.EmailService) *dto.BulkResult {
	result := &dto.BulkResult{FailedDetails: []dto.RowFailure{}}

	for _, row := range rows {
		name := row.Get("name")
		addr := strings.ToLower(row.Get("email"))

		if name == "" {
			result.AddFailure(row.Number, addr, "name is required")
			continue
		}
		if !validation.IsValidEmail(addr) {
			result.AddFailure(row.Number, addr, "email is not valid")
			continue
		}

		exists, err := store.EmailExists(ctx, addr)
		if err != nil {
			result.AddFailure(row.Number, addr, "lookup failed")
			continue
		}
		if exists {
			result.AddFailure(row.Number, addr, "user already exists")
			continue
		}

		password, err := auth.GenerateTempPassword()
		if err != nil {
			result.AddFailure(row.Number, addr, "could not generate password")
			continue
		}
		hash, err := auth.HashPassword(password)
		if err != nil {
			result.AddFailure(row.Number, addr, "could not hash password")
			continue
		}

		user := &models.User{
			Name:     name,
			Email:    addr,
			Password: hash,
			RoleType: role,
			IsActive: true,
		}
		if err := store.Create(ctx, user); err != nil {
			if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				result.AddFailure(row.Number, addr, "user already exists")
			} else {
				result.AddFailure(row.Number, addr, "create failed")
			}
			continue
		}

		if err := createRoleProfile(ctx, store, user); err != nil {
			// the empty profile is recreated at onboarding, so the
			// account stays usable
			logger.Warn().Err(err).Str("email", addr).Msg("Failed to create profile for imported user")
			result.AddFailure(row.Number, addr, "profile create failed")
			continue
		}

		if err := mailer.Send(ctx, addr, email.TemplateWelcome, map[string]string{
			"name":     name,
			"email":    addr,
			"password": password,
		}); err != nil {
			// account exists; a lost email is not a failed row
			logger.Warn().Err(err).Str("email", addr).Msg("Failed to send welcome email")
		}
		result.UploadedCount++
	}
	return result
}

// createRoleProfile inserts the bare students or schools row for an imported
// account, so the user is addressable (mark uploads, applicant views) before
// their first login. Onboarding later fills the row in.
func createRoleProfile(ctx context.Context, store bulkUserStore, user *models.User) error {
	switch user.RoleType {
	case models.RoleStudent:
		first, last, _ := strings.Cut(user.Name, " ")
		return store.CreateStudent(ctx, &models.Student{
			UserID:    user.ID,
			FirstName: first,
			LastName:  last,
		})
	case models.RoleSchool:
		return store.CreateSchool(ctx, &models.School{
			UserID: user.ID,
			Name:   user.Name,
		})
	}
	return nil
}

// --- Core skills ---

// ListCoreSkills returns all competency definitions
func (s *AdminService) ListCoreSkills(ctx context.Context) ([]models.CoreSkill, error) {
	return s.coreSkillRepo.List(ctx)
}

// CreateCoreSkill defines a competency with up to MaxSubSkills sub skills
func (s *AdminService) CreateCoreSkill(ctx context.Context, req *dto.CreateCoreSkillRequest) (*models.CoreSkill, error) {
	subSkills := normalizeSubSkills(req.SubSkills)
	if len(subSkills) == 0 {
		return nil, apperrors.NewBadRequestError("at least one sub skill is required")
	}
	if len(subSkills) > models.MaxSubSkills {
		return nil, apperrors.ErrTooManySubSkills
	}

	skill := &models.CoreSkill{
		Name:      strings.TrimSpace(req.Name),
		SubSkills: subSkills,
	}
	if err := s.coreSkillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// UpdateCoreSkill renames a competency or replaces its sub skill list
func (s *AdminService) UpdateCoreSkill(ctx context.Context, id int64, req *dto.UpdateCoreSkillRequest) (*models.CoreSkill, error) {
	skill, err := s.coreSkillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		skill.Name = strings.TrimSpace(*req.Name)
	}
	if req.SubSkills != nil {
		subSkills := normalizeSubSkills(req.SubSkills)
		if len(subSkills) == 0 {
			return nil, apperrors.NewBadRequestError("at least one sub skill is required")
		}
		if len(subSkills) > models.MaxSubSkills {
			return nil, apperrors.ErrTooManySubSkills
		}
		skill.SubSkills = subSkills
	}

	if err := s.coreSkillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// DeleteCoreSkill removes a competency and its assessments
func (s *AdminService) DeleteCoreSkill(ctx context.Context, id int64) error {
	return s.coreSkillRepo.Delete(ctx, id)
}

func normalizeSubSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// bulkMarkStore is the slice of the repositories the mark upload needs.
type bulkMarkStore interface {
	FindStudentIDByEmail(ctx context.Context, email string) (int64, error)
	UpsertAssessment(ctx context.Context, a *models.SkillAssessment) error
}

type markStoreAdapter struct {
	students *repositories.StudentRepository
	skills   *repositories.CoreSkillRepository
}

func (a markStoreAdapter) FindStudentIDByEmail(ctx context.Context, email string) (int64, error) {
	return a.students.FindIDByEmail(ctx, email)
}

func (a markStoreAdapter) UpsertAssessment(ctx context.Context, assessment *models.SkillAssessment) error {
	return a.skills.UpsertAssessment(ctx, assessment)
}

// BulkUploadMarks grades students against a core skill from an xlsx workbook
// with an "email" column plus one column per sub skill. A row needs a valid
// mark for every sub skill or it fails whole; valid rows upsert the
// student's assessment and recompute its total.
func (s *AdminService) BulkUploadMarks(ctx context.Context, coreSkillID int64, r io.Reader) (*dto.BulkResult, error) {
	skill, err := s.coreSkillRepo.GetByID(ctx, coreSkillID)
	if err != nil {
		return nil, err
	}

	limit, err := s.settingRepo.GetInt(ctx, models.SettingSubSkillMarkLimit, models.DefaultSubSkillMarkLimit)
	if err != nil {
		return nil, err
	}

	rows, err := spreadsheet.ReadRows(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	store := markStoreAdapter{students: s.studentRepo, skills: s.coreSkillRepo}
	return importMarks(ctx, rows, skill, limit, store), nil
}

func importMarks(ctx context.Context, rows []spreadsheet.Row, skill *models.CoreSkill, limit int, store bulkMarkStore) *dto.BulkResult {
	result := &dto.BulkResult{FailedDetails: []dto.RowFailure{}}

	for _, row := range rows {
		addr := strings.ToLower(row.Get("email"))
		if !validation.IsValidEmail(addr) {
			result.AddFailure(row.Number, addr, "email is not valid")
			continue
		}

		studentID, err := store.FindStudentIDByEmail(ctx, addr)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				result.AddFailure(row.Number, addr, "student not found")
			} else {
				result.AddFailure(row.Number, addr, "lookup failed")
			}
			continue
		}

		marks, reason := parseMarks(row, skill.SubSkills, limit)
		if reason != "" {
			result.AddFailure(row.Number, addr, reason)
			continue
		}

		assessment := &models.SkillAssessment{
			StudentID:     studentID,
			CoreSkillID:   skill.ID,
			SubSkillMarks: marks,
		}
		if err := store.UpsertAssessment(ctx, assessment); err != nil {
			result.AddFailure(row.Number, addr, "save failed")
			continue
		}
		result.UploadedCount++
	}
	return result
}

// parseMarks reads one mark per sub skill from the row. Any missing,
// non-numeric or out-of-range mark invalidates the entire row.
func parseMarks(row spreadsheet.Row, subSkills []string, limit int) (map[string]int, string) {
	marks := make(map[string]int, len(subSkills))
	for _, sub := range subSkills {
		raw := row.Get(sub)
		if raw == "" {
			return nil, fmt.Sprintf("missing mark for %q", sub)
		}
		mark, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Sprintf("mark for %q is not a number", sub)
		}
		if mark < 0 || mark > limit {
			return nil, fmt.Sprintf("mark for %q must be between 0 and %d", sub, limit)
		}
		marks[sub] = mark
	}
	return marks, ""
}

// --- Categories ---

// ListCategories returns all job categories with their core skill ids
func (s *AdminService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory creates a job category, verifying the attached core skills
// exist
func (s *AdminService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	if err := s.checkCoreSkillIDs(ctx, req.CoreSkillIDs); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:         strings.TrimSpace(req.Name),
		CoreSkillIDs: req.CoreSkillIDs,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	if category.CoreSkillIDs == nil {
		category.CoreSkillIDs = []int64{}
	}
	return category, nil
}

// UpdateCategory renames a category or replaces its core skill list
func (s *AdminService) UpdateCategory(ctx context.Context, id int64, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.CoreSkillIDs != nil {
		if err := s.checkCoreSkillIDs(ctx, req.CoreSkillIDs); err != nil {
			return nil, err
		}
		category.CoreSkillIDs = req.CoreSkillIDs
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Jobs posted under it survive with a
// null category.
func (s *AdminService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *AdminService) checkCoreSkillIDs(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := s.coreSkillRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// --- Settings ---

// GetSubSkillLimit returns the current mark ceiling
func (s *AdminService) GetSubSkillLimit(ctx context.Context) (int, error) {
	return s.settingRepo.GetInt(ctx, models.SettingSubSkillMarkLimit, models.DefaultSubSkillMarkLimit)
}

// SetSubSkillLimit updates the mark ceiling used by mark uploads
func (s *AdminService) SetSubSkillLimit(ctx context.Context, limit int) error {
	return s.settingRepo.Upsert(ctx, models.SettingSubSkillMarkLimit, strconv.Itoa(limit))
}

// emailTemplateKeys maps the API path segment to the settings key
var emailTemplateKeys = map[string]string{
	"welcome":       models.SettingTemplateWelcome,
	"status-change": models.SettingTemplateStatusChange,
	"interview":     models.SettingTemplateInterview,
}

// storedTemplate is the JSON shape persisted under an email template key
type storedTemplate struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// GetEmailTemplate returns the stored subject and body for a template key
func (s *AdminService) GetEmailTemplate(ctx context.Context, key string) (subject, body string, err error) {
	settingKey, ok := emailTemplateKeys[key]
	if !ok {
		return "", "", apperrors.ErrSettingNotFound
	}

	setting, err := s.settingRepo.Get(ctx, settingKey)
	if err != nil {
		return "", "", err
	}

	var tpl storedTemplate
	if err := json.Unmarshal([]byte(setting.Value), &tpl); err != nil {
		return "", "", fmt.Errorf("stored template %s is corrupt: %w", settingKey, err)
	}
	return tpl.Subject, tpl.Body, nil
}

// SetEmailTemplate stores a template override used for outgoing email
func (s *AdminService) SetEmailTemplate(ctx context.Context, key string, req *dto.EmailTemplateRequest) error {
	settingKey, ok := emailTemplateKeys[key]
	if !ok {
		return apperrors.ErrSettingNotFound
	}

	value, err := json.Marshal(storedTemplate{Subject: req.Subject, Body: req.Body})
	if err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}
	return s.settingRepo.Upsert(ctx, settingKey, string(value))
}

// --- Help desk oversight ---

// ListHelpRequests returns help tickets across all users, optionally
// filtered by status
func (s *AdminService) ListHelpRequests(ctx context.Context, status models.HelpRequestStatus, page, size int) ([]models.HelpRequest, dto.PaginationInfo, error) {
	_, limit := helpers.CalculateOffsetLimit(page, size)
	requests, total, err := s.helpRepo.List(ctx, status, page, limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return requests, helpers.NewPaginationInfo(total, page, limit), nil
}
