package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql is the shared statement builder with postgres placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	SchoolRepository       *SchoolRepository
	CategoryRepository     *CategoryRepository
	CoreSkillRepository    *CoreSkillRepository
	JobRepository          *JobRepository
	ApplicationRepository  *ApplicationRepository
	NotificationRepository *NotificationRepository
	HelpRequestRepository  *HelpRequestRepository
	SettingRepository      *SettingRepository
	TokenRepository        *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		StudentRepository:      NewStudentRepository(db),
		SchoolRepository:       NewSchoolRepository(db),
		CategoryRepository:     NewCategoryRepository(db),
		CoreSkillRepository:    NewCoreSkillRepository(db),
		JobRepository:          NewJobRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		HelpRequestRepository:  NewHelpRequestRepository(db),
		SettingRepository:      NewSettingRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
