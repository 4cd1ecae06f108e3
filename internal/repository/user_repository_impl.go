package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alimikegami/marketplace-service/internal/domain"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type UserRepositoryImpl struct {
	db *sqlx.DB
}

func CreateUserRepository(db *sqlx.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id int64, err error) {
	timestamp := time.Now().Unix()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	nstmt, err := r.db.PrepareNamedContext(ctx, "INSERT INTO users(external_id, name, email, hashed_password, google_id, role, avatar, phone, created_at, updated_at) VALUES (:external_id, :name, :email, :hashed_password, :google_id, :role, :avatar, :phone, :created_at, :updated_at) returning id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	return data.ID, nil
}

func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (data domain.User, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL", email)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, id int64) (data domain.User, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", "GetUserByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *UserRepositoryImpl) GetUsers(ctx context.Context, filter pkgdto.Filter) (data []domain.User, err error) {
	query := "SELECT * FROM users WHERE deleted_at IS NULL ORDER BY created_at DESC"

	args := make(map[string]interface{})

	if filter.Limit != 0 && filter.Page != 0 {
		offset := (filter.Page - 1) * filter.Limit
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filter.Limit
		args["offset"] = offset
	}

	nstmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUsers").Msg("")
		return nil, err
	}

	err = nstmt.SelectContext(ctx, &data, args)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUsers").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *UserRepositoryImpl) CountUsers(ctx context.Context) (count int64, err error) {
	err = r.db.GetContext(ctx, &count, "SELECT COUNT(id) FROM users WHERE deleted_at IS NULL")
	if err != nil {
		log.Error().Err(err).Str("component", "CountUsers").Msg("")
		return 0, err
	}

	return
}

func (r *UserRepositoryImpl) UpdateUser(ctx context.Context, data domain.User) (err error) {
	data.UpdatedAt = time.Now().Unix()

	_, err = r.db.NamedExecContext(ctx, "UPDATE users SET name=:name, email=:email, role=:role, avatar=:avatar, phone=:phone, updated_at=:updated_at WHERE id=:id AND deleted_at IS NULL", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateUser").Msg("")
		return
	}

	return nil
}

func (r *UserRepositoryImpl) UpdateUserPassword(ctx context.Context, id int64, hashedPassword string) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE users SET hashed_password=$1, updated_at=$2 WHERE id=$3 AND deleted_at IS NULL", hashedPassword, time.Now().Unix(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateUserPassword").Msg("")
		return
	}

	return nil
}

func (r *UserRepositoryImpl) DeleteUser(ctx context.Context, id int64) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE users SET deleted_at=$1 WHERE id=$2 AND deleted_at IS NULL", time.Now().Unix(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteUser").Msg("")
		return
	}

	return nil
}

func (r *UserRepositoryImpl) AddAddress(ctx context.Context, data domain.Address) (err error) {
	timestamp := time.Now().Unix()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	_, err = r.db.NamedExecContext(ctx, "INSERT INTO addresses(user_id, street, city, state, zip_code, country, is_default, created_at, updated_at) VALUES (:user_id, :street, :city, :state, :zip_code, :country, :is_default, :created_at, :updated_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddAddress").Msg("")
		return
	}

	return nil
}

func (r *UserRepositoryImpl) GetAddressesByUserID(ctx context.Context, userID int64) (data []domain.Address, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT * FROM addresses WHERE user_id = $1 ORDER BY created_at ASC", userID)
	if err != nil {
		log.Error().Err(err).Str("component", "GetAddressesByUserID").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *UserRepositoryImpl) ClearDefaultAddresses(ctx context.Context, userID int64) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE addresses SET is_default=false, updated_at=$1 WHERE user_id=$2", time.Now().Unix(), userID)
	if err != nil {
		log.Error().Err(err).Str("component", "ClearDefaultAddresses").Msg("")
		return
	}

	return nil
}

func (r *UserRepositoryImpl) AttachSellerProfile(ctx context.Context, userID int64, businessName string, businessDescription string) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE users SET business_name=$1, business_description=$2, seller_rating=COALESCE(seller_rating, 0), total_sales=COALESCE(total_sales, 0), updated_at=$3 WHERE id=$4 AND deleted_at IS NULL", businessName, businessDescription, time.Now().Unix(), userID)
	if err != nil {
		log.Error().Err(err).Str("component", "AttachSellerProfile").Msg("")
		return
	}

	return nil
}

func (r *UserRepositoryImpl) IncrementSellerSales(ctx context.Context, sellerID int64, quantity int64) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE users SET total_sales = total_sales + $1, updated_at=$2 WHERE id=$3 AND business_name IS NOT NULL AND deleted_at IS NULL", quantity, time.Now().Unix(), sellerID)
	if err != nil {
		log.Error().Err(err).Str("component", "IncrementSellerSales").Msg("")
		return
	}

	return nil
}
