package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/skillchain/skillchain-backend/internal/models"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// UserRepository отвечает за работу с таблицами users, profiles и user_sessions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, username, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, username, password_hash, role, is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email %w", err)
	}

	return &user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, username, password_hash, role, is_active, last_login_at, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}

	return &user, nil
}

// UpsertProfile создаёт или обновляет профиль пользователя.
func (r *UserRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, location, bio, photo_url, skills_offered, skills_wanted, availability, privacy, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
			location = EXCLUDED.location,
			bio = EXCLUDED.bio,
			photo_url = EXCLUDED.photo_url,
			skills_offered = EXCLUDED.skills_offered,
			skills_wanted = EXCLUDED.skills_wanted,
			availability = EXCLUDED.availability,
			privacy = EXCLUDED.privacy,
			updated_at = NOW()
		RETURNING user_id, name, location, bio, photo_url, skills_offered, skills_wanted, availability, privacy, completed_swaps, updated_at
	`

	var offered, wanted pq.StringArray
	row := r.db.QueryRowxContext(
		ctx,
		query,
		profile.UserID,
		profile.Name,
		profile.Location,
		profile.Bio,
		profile.PhotoURL,
		pq.Array(profile.SkillsOffered),
		pq.Array(profile.SkillsWanted),
		profile.Availability,
		profile.Privacy,
	)

	if err := row.Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Location,
		&profile.Bio,
		&profile.PhotoURL,
		&offered,
		&wanted,
		&profile.Availability,
		&profile.Privacy,
		&profile.CompletedSwaps,
		&profile.UpdatedAt,
	); err != nil {
		return fmt.Errorf("user repository: upsert profile %w", err)
	}

	profile.SkillsOffered = []string(offered)
	profile.SkillsWanted = []string(wanted)

	return nil
}

// GetProfile возвращает профиль пользователя.
func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT user_id, name, location, bio, photo_url, skills_offered, skills_wanted, availability, privacy, completed_swaps, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile models.Profile
	var offered, wanted pq.StringArray

	if err := r.db.QueryRowxContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Location,
		&profile.Bio,
		&profile.PhotoURL,
		&offered,
		&wanted,
		&profile.Availability,
		&profile.Privacy,
		&profile.CompletedSwaps,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get profile %w", err)
	}

	profile.SkillsOffered = []string(offered)
	profile.SkillsWanted = []string(wanted)

	return &profile, nil
}

// ListProfiles возвращает все публичные профили. Приватные профили в список
// не попадают, собственный профиль зрителя тоже исключается.
func (r *UserRepository) ListProfiles(ctx context.Context, excludeUserID uuid.UUID) ([]models.Profile, error) {
	query := `
		SELECT p.user_id, p.name, p.location, p.bio, p.photo_url, p.skills_offered, p.skills_wanted, p.availability, p.privacy, p.completed_swaps, p.updated_at
		FROM profiles p
		INNER JOIN users u ON u.id = p.user_id
		WHERE u.is_active = TRUE AND p.privacy = 'public' AND p.user_id != $1
		ORDER BY p.updated_at DESC
	`

	rows, err := r.db.QueryxContext(ctx, query, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("user repository: list profiles %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var profile models.Profile
		var offered, wanted pq.StringArray
		if err := rows.Scan(
			&profile.UserID,
			&profile.Name,
			&profile.Location,
			&profile.Bio,
			&profile.PhotoURL,
			&offered,
			&wanted,
			&profile.Availability,
			&profile.Privacy,
			&profile.CompletedSwaps,
			&profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("user repository: list profiles scan %w", err)
		}
		profile.SkillsOffered = []string(offered)
		profile.SkillsWanted = []string(wanted)
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: list profiles rows %w", err)
	}

	return profiles, nil
}

// ListAllProfiles возвращает публичные профили всех активных пользователей.
// Приватные профили в публичный рейтинг не попадают.
func (r *UserRepository) ListAllProfiles(ctx context.Context) ([]models.Profile, error) {
	query := `
		SELECT p.user_id, p.name, p.location, p.bio, p.photo_url, p.skills_offered, p.skills_wanted, p.availability, p.privacy, p.completed_swaps, p.updated_at
		FROM profiles p
		INNER JOIN users u ON u.id = p.user_id
		WHERE u.is_active = TRUE AND p.privacy = 'public'
	`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("user repository: list all profiles %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var profile models.Profile
		var offered, wanted pq.StringArray
		if err := rows.Scan(
			&profile.UserID,
			&profile.Name,
			&profile.Location,
			&profile.Bio,
			&profile.PhotoURL,
			&offered,
			&wanted,
			&profile.Availability,
			&profile.Privacy,
			&profile.CompletedSwaps,
			&profile.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("user repository: list all profiles scan %w", err)
		}
		profile.SkillsOffered = []string(offered)
		profile.SkillsWanted = []string(wanted)
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: list all profiles rows %w", err)
	}

	return profiles, nil
}

// IncrementCompletedSwaps увеличивает счётчик завершённых обменов пользователя.
func (r *UserRepository) IncrementCompletedSwaps(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(
		ctx,
		`UPDATE profiles SET completed_swaps = completed_swaps + 1, updated_at = NOW() WHERE user_id = $1`,
		userID,
	); err != nil {
		return fmt.Errorf("user repository: increment completed swaps %w", err)
	}

	return nil
}

// CreateSession сохраняет новую сессию пользователя.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO user_sessions (user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx,
		query,
		session.UserID,
		session.RefreshToken,
		session.UserAgent,
		session.IPAddress,
		session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create session %w", err)
	}

	return nil
}

// GetSessionByToken возвращает сессию по refresh токену.
func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	var session models.Session
	query := `
		SELECT id, user_id, refresh_token, user_agent, ip_address, expires_at, created_at
		FROM user_sessions
		WHERE refresh_token = $1 AND expires_at > NOW()
	`
	if err := r.db.GetContext(ctx, &session, query, refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get session by token %w", err)
	}

	return &session, nil
}

// DeleteSession удаляет сессию по refresh токену.
func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE refresh_token = $1`, refreshToken); err != nil {
		return fmt.Errorf("user repository: delete session %w", err)
	}

	return nil
}

// UpdateLastLoginAt обновляет время последнего входа пользователя.
func (r *UserRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("user repository: update last login at %w", err)
	}

	return nil
}
