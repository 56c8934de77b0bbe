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

// customerRepository implements the repository.CustomerRepository interface.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

// Create persists a new customer.
func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	if err := repo.db.WithContext(ctx).Create(customerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required customer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customer")
	}

	// Update the entity with generated values
	customer.ID = customerM.ID
	customer.CreatedAt = customerM.CreatedAt
	customer.UpdatedAt = customerM.UpdatedAt

	return nil
}

// FindByID retrieves a customer with orders, tags and communications preloaded.
func (repo *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerM model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Preload("Tags").
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Orders.Items").
		Preload("Communications", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by ID")
	}

	return toCustomerDomain(&customerM), nil
}

// FindByEmail retrieves a customer by their unique email address.
func (repo *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customerM model.CustomerModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&customerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by email")
	}

	return toCustomerDomain(&customerM), nil
}

// List returns one page of customers matching the options plus the total count.
func (repo *customerRepository) List(ctx context.Context, opts repository.CustomerListOptions) ([]*entity.Customer, int64, error) {
	page := opts.Page.Normalize()

	base := repo.db.WithContext(ctx).Model(&model.CustomerModel{})
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		base = base.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?", pattern, pattern, pattern)
	}
	if opts.Status != "" {
		base = base.Where("status = ?", opts.Status.String())
	}
	if opts.Type != "" {
		base = base.Where("type = ?", opts.Type.String())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count customers")
	}

	var customerModels []*model.CustomerModel
	if err := base.
		Select("customers.*, (SELECT COUNT(*) FROM orders WHERE orders.customer_id = customers.id) AS order_count").
		Preload("Tags").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&customerModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list customers")
	}

	customers := make([]*entity.Customer, 0, len(customerModels))
	for _, customerM := range customerModels {
		customers = append(customers, toCustomerDomain(customerM))
	}

	return customers, total, nil
}

// Update persists changes to an existing customer.
func (repo *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	result := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"name":    customerM.Name,
			"email":   customerM.Email,
			"phone":   customerM.Phone,
			"company": customerM.Company,
			"notes":   customerM.Notes,
			"status":  customerM.Status,
			"type":    customerM.Type,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(result.Error, "failed to update customer")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

// Delete removes a customer row.
func (repo *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CustomerModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete customer")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

// Segments groups customers by (type, status) with counts and completed-order revenue.
func (repo *customerRepository) Segments(ctx context.Context) ([]entity.CustomerSegment, error) {
	var rows []struct {
		Type          string
		Status        string
		CustomerCount int64
		Revenue       float64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Select(`customers.type,
			customers.status,
			COUNT(DISTINCT customers.id) AS customer_count,
			COALESCE(SUM(orders.total) FILTER (WHERE orders.status = 'completed'), 0) AS revenue`).
		Joins("LEFT JOIN orders ON orders.customer_id = customers.id").
		Group("customers.type, customers.status").
		Order("customers.type, customers.status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate customer segments")
	}

	segments := make([]entity.CustomerSegment, 0, len(rows))
	for _, row := range rows {
		segments = append(segments, entity.CustomerSegment{
			Type:          entity.CustomerType(row.Type),
			Status:        entity.CustomerStatus(row.Status),
			CustomerCount: row.CustomerCount,
			Revenue:       row.Revenue,
		})
	}

	return segments, nil
}

// TopByLifetimeValue ranks customers by completed-order revenue.
func (repo *customerRepository) TopByLifetimeValue(ctx context.Context, limit int) ([]entity.CustomerValue, error) {
	var rows []struct {
		CustomerID    uuid.UUID
		Name          string
		Email         string
		LifetimeValue float64
		OrderCount    int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Select(`customers.id AS customer_id,
			customers.name,
			customers.email,
			COALESCE(SUM(orders.total), 0) AS lifetime_value,
			COUNT(orders.id) AS order_count`).
		Joins("JOIN orders ON orders.customer_id = customers.id AND orders.status = 'completed'").
		Group("customers.id, customers.name, customers.email").
		Order("lifetime_value DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank customers by lifetime value")
	}

	values := make([]entity.CustomerValue, 0, len(rows))
	for _, row := range rows {
		values = append(values, entity.CustomerValue{
			CustomerID:    row.CustomerID,
			Name:          row.Name,
			Email:         row.Email,
			LifetimeValue: row.LifetimeValue,
			OrderCount:    row.OrderCount,
		})
	}

	return values, nil
}

// AttachTag links an existing tag to a customer. Re-attaching is a no-op.
func (repo *customerRepository) AttachTag(ctx context.Context, customerID, tagID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Exec("INSERT INTO customer_tags (customer_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			customerID, tagID).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCustomerNotFound
		}

		return errors.Wrap(err, "failed to attach tag to customer")
	}

	return nil
}

// --- Mapper Functions ---

// toCustomerDomain converts a GORM CustomerModel to a domain Customer entity.
func toCustomerDomain(data *model.CustomerModel) *entity.Customer {
	if data == nil {
		return nil
	}

	customer := &entity.Customer{
		ID:         data.ID,
		Name:       data.Name,
		Email:      data.Email,
		Phone:      data.Phone,
		Company:    data.Company,
		Notes:      data.Notes,
		Status:     entity.CustomerStatus(data.Status),
		Type:       entity.CustomerType(data.Type),
		OrderCount: data.OrderCount,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}

	for _, tagM := range data.Tags {
		customer.Tags = append(customer.Tags, toTagDomain(tagM))
	}
	for _, orderM := range data.Orders {
		customer.Orders = append(customer.Orders, toOrderDomain(orderM))
	}
	for _, commM := range data.Communications {
		customer.Communications = append(customer.Communications, toCommunicationDomain(commM))
	}

	return customer
}

// fromCustomerDomain converts a domain Customer entity to a GORM CustomerModel.
func fromCustomerDomain(data *entity.Customer) *model.CustomerModel {
	if data == nil {
		return nil
	}

	return &model.CustomerModel{
		ID:        data.ID,
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Company:   data.Company,
		Notes:     data.Notes,
		Status:    data.Status.String(),
		Type:      data.Type.String(),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
