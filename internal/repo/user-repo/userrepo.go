package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/maisonshop/backend/internal/domain"
	"github.com/maisonshop/backend/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, role, telegram_id, telegram_username
		FROM users
		WHERE email = $1
	`
	var user domain.User
	err := repo.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.Phone,
		&user.Role, &user.TelegramID, &user.TelegramUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by email", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `
		SELECT id, email, full_name, phone, role, telegram_id, telegram_username
		FROM users
		WHERE id = $1
	`
	var user domain.User
	err := repo.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FullName, &user.Phone,
		&user.Role, &user.TelegramID, &user.TelegramUsername,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (repo *Repository) FindByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := `
		SELECT id, email, full_name
		FROM users
		WHERE telegram_id = $1
	`
	var user domain.User
	err := repo.db.QueryRow(ctx, query, telegramID).Scan(&user.ID, &user.Email, &user.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by telegram id", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

// Create inserts the user and relies on the unique constraint on email to
// reject duplicates, so concurrent registrations cannot both slip through.
func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, full_name, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, role
	`
	err := repo.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.FullName, user.Phone).
		Scan(&user.ID, &user.Role)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return nil, pg.ErrUniqueViolation
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (repo *Repository) UpdateTelegram(ctx context.Context, userID int, telegramID int64, username *string) (*domain.User, error) {
	query := `
		UPDATE users
		SET telegram_id = $1, telegram_username = $2
		WHERE id = $3
		RETURNING id, email, telegram_id, telegram_username
	`
	var user domain.User
	err := repo.db.QueryRow(ctx, query, telegramID, username, userID).
		Scan(&user.ID, &user.Email, &user.TelegramID, &user.TelegramUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't link telegram account", zap.Error(err))
		return nil, err
	}
	return &user, nil
}
