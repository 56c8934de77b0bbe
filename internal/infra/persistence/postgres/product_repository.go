package postgres

import (
	"context"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{
		db: db,
	}
}

// Create persists a new product, optionally connecting existing tags.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product, tagIDs []uuid.UUID) error {
	productM := fromProductDomain(product)

	if len(tagIDs) > 0 {
		productM.Tags = tagRefs(tagIDs)
	}

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrTagNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required product information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	// Update the entity with generated values
	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// FindByID retrieves a product with tags and order items preloaded.
func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).
		Preload("Tags").
		Preload("OrderItems").
		Where("id = ?", id).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by ID")
	}

	return toProductDomain(&productM), nil
}

// FindByIDs retrieves the products whose ids are listed.
func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var productModels []*model.ProductModel
	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by IDs")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// List returns one page of products matching the options plus the total count.
func (repo *productRepository) List(ctx context.Context, opts repository.ProductListOptions) ([]*entity.Product, int64, error) {
	page := opts.Page.Normalize()

	base := repo.db.WithContext(ctx).Model(&model.ProductModel{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		base = base.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if opts.Status != "" {
		base = base.Where("status = ?", opts.Status.String())
	}
	if opts.MinPrice != nil {
		base = base.Where("price >= ?", *opts.MinPrice)
	}
	if opts.MaxPrice != nil {
		base = base.Where("price <= ?", *opts.MaxPrice)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count products")
	}

	var productModels []*model.ProductModel
	if err := base.
		Select("products.*, (SELECT COUNT(*) FROM order_items WHERE order_items.product_id = products.id) AS order_count").
		Preload("Tags").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&productModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, total, nil
}

// Update persists changes to an existing product. A non-nil tagIDs replaces the tag set.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product, tagIDs []uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"status":      product.Status.String(),
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	if tagIDs != nil {
		productM := model.ProductModel{ID: product.ID}
		if err := repo.db.WithContext(ctx).
			Model(&productM).
			Association("Tags").
			Replace(tagRefs(tagIDs)); err != nil {
			return errors.Wrap(err, "failed to replace product tags")
		}
	}

	return nil
}

// Delete removes a product row and its tag links.
func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	productM := model.ProductModel{ID: id}
	if err := repo.db.WithContext(ctx).
		Model(&productM).
		Association("Tags").
		Clear(); err != nil {
		return errors.Wrap(err, "failed to clear product tags")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ProductModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// CountOrderReferences counts order items referencing the product.
func (repo *productRepository) CountOrderReferences(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderItemModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count order references")
	}

	return count, nil
}

// AttachTag links an existing tag to a product. Re-attaching is a no-op.
func (repo *productRepository) AttachTag(ctx context.Context, productID, tagID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Exec("INSERT INTO product_tags (product_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			productID, tagID).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return errors.Wrap(err, "failed to attach tag to product")
	}

	return nil
}

// DetachTag unlinks a tag from a product.
func (repo *productRepository) DetachTag(ctx context.Context, productID, tagID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Exec("DELETE FROM product_tags WHERE product_id = ? AND tag_id = ?",
			productID, tagID).Error
	if err != nil {
		return errors.Wrap(err, "failed to detach tag from product")
	}

	return nil
}

// tagRefs builds tag models carrying only IDs for association writes.
func tagRefs(tagIDs []uuid.UUID) []*model.TagModel {
	refs := make([]*model.TagModel, 0, len(tagIDs))
	for _, id := range tagIDs {
		refs = append(refs, &model.TagModel{ID: id})
	}

	return refs
}

// --- Mapper Functions ---

// toProductDomain converts a GORM ProductModel to a domain Product entity.
func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	product := &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Status:      entity.ProductStatus(data.Status),
		OrderCount:  data.OrderCount,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}

	for _, tagM := range data.Tags {
		product.Tags = append(product.Tags, toTagDomain(tagM))
	}
	for _, itemM := range data.OrderItems {
		product.OrderItems = append(product.OrderItems, toOrderItemDomain(itemM))
	}

	return product
}

// fromProductDomain converts a domain Product entity to a GORM ProductModel.
func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Status:      data.Status.String(),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
