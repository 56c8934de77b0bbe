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
	"gorm.io/gorm/clause"
)

// tagRepository implements the repository.TagRepository interface.
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository is the constructor for tagRepository.
func NewTagRepository(db *gorm.DB) repository.TagRepository {
	return &tagRepository{
		db: db,
	}
}

// Create persists a new tag.
func (repo *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	tagM := fromTagDomain(tag)

	if err := repo.db.WithContext(ctx).Create(tagM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateTagName
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required tag information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create tag")
	}

	// Update the entity with generated values
	tag.ID = tagM.ID
	tag.CreatedAt = tagM.CreatedAt
	tag.UpdatedAt = tagM.UpdatedAt

	return nil
}

// FindByID retrieves a tag with all related collections preloaded.
func (repo *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var tagM model.TagModel

	if err := repo.db.WithContext(ctx).
		Preload("Customers").
		Preload("Orders").
		Preload("Products").
		Preload("Communications").
		Where("id = ?", id).
		First(&tagM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to find tag by ID")
	}

	return toTagDomainWithRelations(&tagM), nil
}

// FindByName retrieves a tag by its unique name.
func (repo *tagRepository) FindByName(ctx context.Context, name string) (*entity.Tag, error) {
	var tagM model.TagModel

	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&tagM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTagNotFound
		}

		return nil, errors.Wrap(err, "failed to find tag by name")
	}

	return toTagDomain(&tagM), nil
}

// UpsertByName returns the tag with the given name, creating it when absent.
func (repo *tagRepository) UpsertByName(ctx context.Context, name string) (*entity.Tag, error) {
	tag, err := repo.FindByName(ctx, name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, repository.ErrTagNotFound) {
		return nil, err
	}

	tagM := &model.TagModel{
		Name: name,
		Type: entity.TagTypeCustomer.String(),
	}
	if err := repo.db.WithContext(ctx).Create(tagM).Error; err != nil {
		// A concurrent writer may have won the race; fall back to the read.
		if isUniqueConstraintViolation(err) {
			return repo.FindByName(ctx, name)
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to upsert tag")
	}

	return toTagDomain(tagM), nil
}

// List returns one page of tags matching the options plus the total count.
func (repo *tagRepository) List(ctx context.Context, opts repository.TagListOptions) ([]*entity.Tag, int64, error) {
	page := opts.Page.Normalize()

	base := repo.db.WithContext(ctx).Model(&model.TagModel{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		base = base.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if opts.Type != "" {
		base = base.Where("type = ?", opts.Type.String())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count tags")
	}

	var tagModels []*model.TagModel
	if err := base.
		Order("name ASC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&tagModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list tags")
	}

	tags := make([]*entity.Tag, 0, len(tagModels))
	for _, tagM := range tagModels {
		tags = append(tags, toTagDomain(tagM))
	}

	return tags, total, nil
}

// Update persists changes to an existing tag.
func (repo *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TagModel{}).
		Where("id = ?", tag.ID).
		Updates(map[string]any{
			"name":        tag.Name,
			"color":       tag.Color,
			"description": tag.Description,
			"type":        tag.Type.String(),
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateTagName
		}

		return errors.Wrap(result.Error, "failed to update tag")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTagNotFound
	}

	return nil
}

// Delete removes a tag row.
func (repo *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TagModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete tag")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTagNotFound
	}

	return nil
}

// CountAttachments totals the tag's links across all join tables.
func (repo *tagRepository) CountAttachments(ctx context.Context, tagID uuid.UUID) (int64, error) {
	var count int64

	err := repo.db.WithContext(ctx).
		Raw(`SELECT
			(SELECT COUNT(*) FROM product_tags WHERE tag_id = @id) +
			(SELECT COUNT(*) FROM customer_tags WHERE tag_id = @id) +
			(SELECT COUNT(*) FROM communication_tags WHERE tag_id = @id) +
			(SELECT COUNT(*) FROM order_tags WHERE tag_id = @id)`,
			map[string]any{"id": tagID}).
		Scan(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count tag attachments")
	}

	return count, nil
}

// BulkCreate inserts many tags in one statement, skipping duplicate names.
func (repo *tagRepository) BulkCreate(ctx context.Context, tags []*entity.Tag) (int64, error) {
	if len(tags) == 0 {
		return 0, nil
	}

	tagModels := make([]*model.TagModel, 0, len(tags))
	for _, tag := range tags {
		tagModels = append(tagModels, fromTagDomain(tag))
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&tagModels)

	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to bulk create tags")
	}

	return result.RowsAffected, nil
}

// RelatedOrders returns the orders carrying the tag.
func (repo *tagRepository) RelatedOrders(ctx context.Context, tagID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Joins("JOIN order_tags ON order_tags.order_id = orders.id").
		Where("order_tags.tag_id = ?", tagID).
		Preload("Customer").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by tag")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// RelatedProducts returns the products carrying the tag.
func (repo *tagRepository) RelatedProducts(ctx context.Context, tagID uuid.UUID) ([]*entity.Product, error) {
	var productModels []*model.ProductModel

	if err := repo.db.WithContext(ctx).
		Joins("JOIN product_tags ON product_tags.product_id = products.id").
		Where("product_tags.tag_id = ?", tagID).
		Find(&productModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by tag")
	}

	products := make([]*entity.Product, 0, len(productModels))
	for _, productM := range productModels {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// RelatedCustomers returns the customers carrying the tag.
func (repo *tagRepository) RelatedCustomers(ctx context.Context, tagID uuid.UUID) ([]*entity.Customer, error) {
	var customerModels []*model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Joins("JOIN customer_tags ON customer_tags.customer_id = customers.id").
		Where("customer_tags.tag_id = ?", tagID).
		Find(&customerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find customers by tag")
	}

	customers := make([]*entity.Customer, 0, len(customerModels))
	for _, customerM := range customerModels {
		customers = append(customers, toCustomerDomain(customerM))
	}

	return customers, nil
}

// --- Mapper Functions ---

// toTagDomain converts a GORM TagModel to a domain Tag entity without relations.
func toTagDomain(data *model.TagModel) *entity.Tag {
	if data == nil {
		return nil
	}

	return &entity.Tag{
		ID:          data.ID,
		Name:        data.Name,
		Color:       data.Color,
		Description: data.Description,
		Type:        entity.TagType(data.Type),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toTagDomainWithRelations converts a TagModel including its tagged entities.
func toTagDomainWithRelations(data *model.TagModel) *entity.Tag {
	tag := toTagDomain(data)
	if tag == nil {
		return nil
	}

	for _, customerM := range data.Customers {
		tag.Customers = append(tag.Customers, toCustomerDomain(customerM))
	}
	for _, orderM := range data.Orders {
		tag.Orders = append(tag.Orders, toOrderDomain(orderM))
	}
	for _, productM := range data.Products {
		tag.Products = append(tag.Products, toProductDomain(productM))
	}
	for _, commM := range data.Communications {
		tag.Communications = append(tag.Communications, toCommunicationDomain(commM))
	}

	return tag
}

// fromTagDomain converts a domain Tag entity to a GORM TagModel.
func fromTagDomain(data *entity.Tag) *model.TagModel {
	if data == nil {
		return nil
	}

	return &model.TagModel{
		ID:          data.ID,
		Name:        data.Name,
		Color:       data.Color,
		Description: data.Description,
		Type:        data.Type.String(),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
