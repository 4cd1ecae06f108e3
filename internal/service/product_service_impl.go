package service

import (
	"context"
	"time"

	"github.com/alimikegami/marketplace-service/internal/domain"
	"github.com/alimikegami/marketplace-service/internal/dto"
	imagestore "github.com/alimikegami/marketplace-service/internal/infrastructure/image-store"
	"github.com/alimikegami/marketplace-service/internal/repository"
	pkgdto "github.com/alimikegami/marketplace-service/pkg/dto"
	"github.com/alimikegami/marketplace-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

const (
	topProductsLimit      = 5
	featuredProductsLimit = 8
)

type ProductServiceImpl struct {
	repo       repository.ProductRepository
	imageStore imagestore.ImageStore
}

func CreateProductService(repo repository.ProductRepository, imageStore imagestore.ImageStore) ProductService {
	return &ProductServiceImpl{repo: repo, imageStore: imageStore}
}

func convertProductToResponse(product domain.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:             product.ID.Hex(),
		Name:           product.Name,
		Description:    product.Description,
		Price:          product.Price,
		DiscountPrice:  product.DiscountPrice,
		Category:       product.Category,
		Brand:          product.Brand,
		SellerID:       product.SellerID,
		Stock:          product.Stock,
		Rating:         product.Rating,
		NumReviews:     product.NumReviews,
		IsFeatured:     product.IsFeatured,
		Specifications: product.Specifications,
		CreatedAt:      product.CreatedAt,
	}

	for _, image := range product.Images {
		resp.Images = append(resp.Images, dto.ProductImageResponse{
			URL:      image.URL,
			PublicID: image.PublicID,
		})
	}

	for _, review := range product.Reviews {
		resp.Reviews = append(resp.Reviews, dto.ReviewResponse{
			UserID:    review.UserID,
			Name:      review.Name,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		})
	}

	return resp
}

func convertProductsToResponses(products []domain.Product) []dto.ProductResponse {
	records := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		records = append(records, convertProductToResponse(product))
	}
	return records
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest) (resp dto.ProductResponse, err error) {
	if req.Name == "" || req.Price <= 0 {
		return resp, errs.ErrClient
	}

	if !domain.IsValidCategory(req.Category) {
		return resp, errs.ErrInvalidCategory
	}

	product := domain.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		Brand:          req.Brand,
		SellerID:       req.SellerID,
		Reviews:        []domain.Review{},
		Specifications: req.Specifications,
	}

	if req.DiscountPrice != nil {
		product.DiscountPrice = *req.DiscountPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	for _, image := range req.Images {
		product.Images = append(product.Images, domain.ProductImage{
			URL:      image.URL,
			PublicID: image.PublicID,
		})
	}

	id, err := s.repo.AddProduct(ctx, product)
	if err != nil {
		return
	}

	product.ID = id

	return convertProductToResponse(product), nil
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.Pagination, err error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 12
	}

	products, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		return
	}

	total, err := s.repo.CountProducts(ctx, filter)
	if err != nil {
		return
	}

	pages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		pages++
	}

	resp.Records = convertProductsToResponses(products)
	resp.Page = filter.Page
	resp.Pages = pages
	resp.Total = total

	return resp, nil
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (resp dto.ProductResponse, err error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	return convertProductToResponse(product), nil
}

func (s *ProductServiceImpl) GetTopRatedProducts(ctx context.Context) (resp []dto.ProductResponse, err error) {
	products, err := s.repo.GetTopRatedProducts(ctx, topProductsLimit)
	if err != nil {
		return
	}

	return convertProductsToResponses(products), nil
}

func (s *ProductServiceImpl) GetFeaturedProducts(ctx context.Context) (resp []dto.ProductResponse, err error) {
	products, err := s.repo.GetFeaturedProducts(ctx, featuredProductsLimit)
	if err != nil {
		return
	}

	return convertProductsToResponses(products), nil
}

func (s *ProductServiceImpl) GetProductsBySellerID(ctx context.Context, sellerID int64) (resp []dto.ProductResponse, err error) {
	products, err := s.repo.GetProductsBySellerID(ctx, sellerID)
	if err != nil {
		return
	}

	return convertProductsToResponses(products), nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, actorID int64, actorRole string, req dto.ProductRequest) (resp dto.ProductResponse, err error) {
	product, err := s.repo.GetProductByID(ctx, req.ID)
	if err != nil {
		return
	}

	if product.SellerID != actorID && actorRole != domain.RoleAdmin {
		return resp, errs.ErrForbidden
	}

	if req.Category != "" && !domain.IsValidCategory(req.Category) {
		return resp, errs.ErrInvalidCategory
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Price > 0 {
		product.Price = req.Price
	}
	if req.DiscountPrice != nil {
		product.DiscountPrice = *req.DiscountPrice
	}
	if req.Category != "" {
		product.Category = req.Category
	}
	if req.Brand != "" {
		product.Brand = req.Brand
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Specifications != nil {
		product.Specifications = req.Specifications
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err = s.repo.UpdateProduct(ctx, product); err != nil {
		return
	}

	return convertProductToResponse(product), nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, actorID int64, actorRole string, id string) (err error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	if product.SellerID != actorID && actorRole != domain.RoleAdmin {
		return errs.ErrForbidden
	}

	if err = s.repo.DeleteProduct(ctx, id); err != nil {
		return
	}

	// Image cleanup is best effort; the record is already gone.
	for _, image := range product.Images {
		if image.PublicID == "" {
			continue
		}
		if err := s.imageStore.DeleteImage(ctx, image.PublicID); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("failed to delete product image")
		}
	}

	return nil
}

func (s *ProductServiceImpl) AddReview(ctx context.Context, user domain.User, req dto.ReviewRequest) (err error) {
	if req.Rating < 1 || req.Rating > 5 {
		return errs.ErrClient
	}

	product, err := s.repo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return
	}

	for _, review := range product.Reviews {
		if review.UserID == user.ID {
			return errs.ErrAlreadyReviewed
		}
	}

	review := domain.Review{
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().Unix(),
	}

	numReviews := product.NumReviews + 1
	rating := (product.Rating*float64(product.NumReviews) + float64(req.Rating)) / float64(numReviews)

	return s.repo.AddReview(ctx, req.ProductID, review, rating, numReviews)
}
