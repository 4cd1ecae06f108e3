package service

import (
	"context"
	"strings"

	"github.com/alimikegami/marketplace-service/config"
	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	"github.com/alimikegami/marketplace-service/internal/repository"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/alimikegami/marketplace-service/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	config *config.Config
}

func CreateUserService(repo repository.UserRepository, config *config.Config) UserService {
	return &UserServiceImpl{repo: repo, config: config}
}

func convertUserToResponse(user domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Avatar:     user.Avatar,
		Phone:      user.Phone,
	}

	if user.HasSellerProfile() {
		sellerInfo := dto.SellerInfoResponse{
			BusinessName: *user.BusinessName,
		}
		if user.BusinessDescription != nil {
			sellerInfo.BusinessDescription = *user.BusinessDescription
		}
		if user.SellerRating != nil {
			sellerInfo.Rating = *user.SellerRating
		}
		if user.TotalSales != nil {
			sellerInfo.TotalSales = *user.TotalSales
		}
		resp.SellerInfo = &sellerInfo
	}

	for _, address := range user.Addresses {
		resp.Addresses = append(resp.Addresses, dto.AddressResponse{
			ID:        address.ID,
			Street:    address.Street,
			City:      address.City,
			State:     address.State,
			ZipCode:   address.ZipCode,
			Country:   address.Country,
			IsDefault: address.IsDefault,
		})
	}

	return resp
}

func (s *UserServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (resp dto.AuthResponse, err error) {
	if req.Email == "" || req.Name == "" {
		return resp, errs.ErrClient
	}

	if req.Password == "" && req.GoogleID == "" {
		return resp, errs.ErrClient
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return
	}

	if user.ID != 0 {
		return resp, errs.ErrEmailAlreadyUsed
	}

	userEnt := domain.User{
		Name:       req.Name,
		Email:      strings.ToLower(req.Email),
		Role:       domain.RoleUser,
		ExternalID: ulid.Make().String(),
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
		if err != nil {
			return resp, err
		}
		hashed := string(hash)
		userEnt.HashedPassword = &hashed
	}

	if req.GoogleID != "" {
		userEnt.GoogleID = &req.GoogleID
	}

	id, err := s.repo.AddUser(ctx, userEnt)
	if err != nil {
		return
	}

	userEnt.ID = id

	token, err := utils.CreateJWTToken(id, userEnt.Name, userEnt.Role, s.config.JWTSecret)
	if err != nil {
		return
	}

	resp.UserResponse = convertUserToResponse(userEnt)
	resp.Token = token

	return resp, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (resp dto.AuthResponse, err error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return
	}

	if user.ID == 0 {
		return resp, errs.ErrInvalidCredentialsEmail
	}

	authenticated := false
	if user.HashedPassword != nil {
		authenticated = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(req.Password)) == nil
	}

	// Accounts registered through Google carry no password hash and
	// authenticate with their external identity instead.
	if !authenticated && user.GoogleID != nil && req.Password == *user.GoogleID {
		authenticated = true
	}

	if !authenticated {
		log.Ctx(ctx).Error().Str("component", "Login").Msg("credentials mismatch")
		return resp, errs.ErrInvalidCredentialsEmail
	}

	token, err := utils.CreateJWTToken(user.ID, user.Name, user.Role, s.config.JWTSecret)
	if err != nil {
		return
	}

	resp.UserResponse = convertUserToResponse(user)
	resp.Token = token

	return resp, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID int64) (resp dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	addresses, err := s.repo.GetAddressesByUserID(ctx, userID)
	if err != nil {
		return
	}

	user.Addresses = addresses

	return convertUserToResponse(user), nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (resp dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err = s.repo.UpdateUser(ctx, user); err != nil {
		return
	}

	return convertUserToResponse(user), nil
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, req dto.UpdatePasswordRequest) (err error) {
	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return errs.ErrAccountNotFound
	}

	if user.HashedPassword == nil {
		return errs.ErrWrongPassword
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(req.CurrentPassword))
	if err != nil {
		return errs.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	if err != nil {
		return
	}

	return s.repo.UpdateUserPassword(ctx, user.ID, string(hash))
}

func (s *UserServiceImpl) AddAddress(ctx context.Context, req dto.AddressRequest) (err error) {
	if req.IsDefault {
		if err = s.repo.ClearDefaultAddresses(ctx, req.UserID); err != nil {
			return
		}
	}

	return s.repo.AddAddress(ctx, domain.Address{
		UserID:    req.UserID,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Country:   req.Country,
		IsDefault: req.IsDefault,
	})
}

func (s *UserServiceImpl) BecomeSeller(ctx context.Context, req dto.BecomeSellerRequest) (resp dto.UserResponse, err error) {
	if req.BusinessName == "" {
		return resp, errs.ErrClient
	}

	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	if err = s.repo.AttachSellerProfile(ctx, req.UserID, req.BusinessName, req.BusinessDescription); err != nil {
		return
	}

	// Admins keep their role; everyone else becomes a seller.
	if user.Role != domain.RoleAdmin {
		user.Role = domain.RoleSeller
		if err = s.repo.UpdateUser(ctx, user); err != nil {
			return
		}
	}

	user.BusinessName = &req.BusinessName
	user.BusinessDescription = &req.BusinessDescription

	return convertUserToResponse(user), nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.Pagination, err error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 12
	}

	users, err := s.repo.GetUsers(ctx, filter)
	if err != nil {
		return
	}

	total, err := s.repo.CountUsers(ctx)
	if err != nil {
		return
	}

	records := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		records = append(records, convertUserToResponse(user))
	}

	pages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		pages++
	}

	resp.Records = records
	resp.Page = filter.Page
	resp.Pages = pages
	resp.Total = total

	return resp, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id int64) (resp dto.UserResponse, err error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return resp, errs.ErrAccountNotFound
	}

	return convertUserToResponse(user), nil
}

func (s *UserServiceImpl) UpdateUserByAdmin(ctx context.Context, req dto.AdminUpdateUserRequest) (err error) {
	user, err := s.repo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return errs.ErrAccountNotFound
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = strings.ToLower(req.Email)
	}
	if req.Role != "" {
		if !domain.IsValidRole(req.Role) {
			return errs.ErrClient
		}
		user.Role = req.Role
	}

	return s.repo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id int64) (err error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return
	}

	if user.ID == 0 {
		return errs.ErrAccountNotFound
	}

	return s.repo.DeleteUser(ctx, id)
}
