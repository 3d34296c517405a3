package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	StudentRepository     *StudentRepository
	DriveRepository       *DriveRepository
	ApplicationRepository *ApplicationRepository
	RoundRepository       *RoundRepository
	TokenRepository       *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		StudentRepository:     NewStudentRepository(db),
		DriveRepository:       NewDriveRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		RoundRepository:       NewRoundRepository(db),
		TokenRepository:       NewTokenRepository(db),
	}
}
