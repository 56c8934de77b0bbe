package postgres

import (
	"context"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/query"
	"crm/internal/domain/repository"
	"crm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderFilterColumns maps the logical advanced-query field names onto columns.
var orderFilterColumns = map[string]string{
	"status":     "status",
	"total":      "total",
	"customerId": "customer_id",
	"userId":     "user_id",
	"createdAt":  "created_at",
}

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists an order together with its items as one compound write.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCustomerNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = itemM.OrderID
	}

	return nil
}

// FindByID retrieves an order with customer, items and products preloaded.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Preload("Tags").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// List returns one page of orders matching the options plus the total count.
func (repo *orderRepository) List(ctx context.Context, opts repository.OrderListOptions) ([]*entity.Order, int64, error) {
	page := opts.Page.Normalize()

	base := repo.db.WithContext(ctx).Model(&model.OrderModel{})
	if opts.CustomerID != nil {
		base = base.Where("customer_id = ?", *opts.CustomerID)
	}
	if opts.UserID != nil {
		base = base.Where("user_id = ?", *opts.UserID)
	}
	if opts.Status != "" {
		base = base.Where("status = ?", opts.Status.String())
	}
	if opts.MinTotal != nil {
		base = base.Where("total >= ?", *opts.MinTotal)
	}
	if opts.MaxTotal != nil {
		base = base.Where("total <= ?", *opts.MaxTotal)
	}
	if opts.StartDate != nil {
		base = base.Where("created_at >= ?", *opts.StartDate)
	}
	if opts.EndDate != nil {
		base = base.Where("created_at <= ?", *opts.EndDate)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count orders")
	}

	var orderModels []*model.OrderModel
	if err := base.
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// UpdateStatus transitions an order to the given status.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order row and its items.
func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&model.OrderItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete order items")
	}

	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OrderModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete order")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// SumCompletedByCustomer totals a customer's completed orders.
func (repo *orderRepository) SumCompletedByCustomer(ctx context.Context, customerID uuid.UUID) (entity.PurchaseTotals, error) {
	var row struct {
		TotalPurchases float64
		TotalOrders    int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("COALESCE(SUM(total), 0) AS total_purchases, COUNT(*) AS total_orders").
		Where("customer_id = ? AND status = ?", customerID, entity.OrderStatusCompleted.String()).
		Scan(&row).Error; err != nil {
		return entity.PurchaseTotals{}, errors.Wrap(err, "failed to sum completed orders")
	}

	return entity.PurchaseTotals{
		TotalPurchases: row.TotalPurchases,
		TotalOrders:    row.TotalOrders,
	}, nil
}

// AdvancedQuery runs a generic filter list against allow-listed order fields.
func (repo *orderRepository) AdvancedQuery(ctx context.Context, filters []query.Filter, sort query.Sort, page query.Pagination) ([]*entity.Order, int64, error) {
	page = page.Normalize()

	base := repo.db.WithContext(ctx).Model(&model.OrderModel{})

	base, err := applyFilters(base, filters, orderFilterColumns)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count filtered orders")
	}

	if sort.By != "" {
		base, err = applySort(base, sort, orderFilterColumns)
		if err != nil {
			return nil, 0, err
		}
	} else {
		base = base.Order("created_at DESC")
	}

	var orderModels []*model.OrderModel
	if err := base.
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&orderModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to run advanced order query")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, total, nil
}

// ReportByStatus groups orders created inside the window by status.
func (repo *orderRepository) ReportByStatus(ctx context.Context, start, end time.Time) ([]entity.OrderStatusReport, error) {
	var rows []struct {
		Status     string
		OrderCount int64
		TotalValue float64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select("status, COUNT(*) AS order_count, COALESCE(SUM(total), 0) AS total_value").
		Where("created_at >= ? AND created_at <= ?", start, end).
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate orders by status")
	}

	report := make([]entity.OrderStatusReport, 0, len(rows))
	for _, row := range rows {
		report = append(report, entity.OrderStatusReport{
			Status:     entity.OrderStatus(row.Status),
			OrderCount: row.OrderCount,
			TotalValue: row.TotalValue,
		})
	}

	return report, nil
}

// BulkUpdateStatus updates every listed order owned by userID in one statement.
func (repo *orderRepository) BulkUpdateStatus(ctx context.Context, orderIDs []uuid.UUID, status entity.OrderStatus, userID uuid.UUID) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id IN ? AND user_id = ?", orderIDs, userID).
		Update("status", status.String())

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to bulk update order status")
	}

	return result.RowsAffected, nil
}

// FindRecentByCustomer returns the customer's newest orders, truncated to limit.
func (repo *orderRepository) FindRecentByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find recent orders by customer")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	order := &entity.Order{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		UserID:     data.UserID,
		Total:      data.Total,
		Status:     entity.OrderStatus(data.Status),
		Customer:   toCustomerDomain(data.Customer),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}

	for _, itemM := range data.Items {
		order.Items = append(order.Items, toOrderItemDomain(itemM))
	}
	for _, tagM := range data.Tags {
		order.Tags = append(order.Tags, toTagDomain(tagM))
	}

	return order
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	orderM := &model.OrderModel{
		ID:         data.ID,
		CustomerID: data.CustomerID,
		UserID:     data.UserID,
		Total:      data.Total,
		Status:     data.Status.String(),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}

	for _, item := range data.Items {
		orderM.Items = append(orderM.Items, &model.OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	return orderM
}

// toOrderItemDomain converts a GORM OrderItemModel to a domain OrderItem.
func toOrderItemDomain(data *model.OrderItemModel) *entity.OrderItem {
	if data == nil {
		return nil
	}

	return &entity.OrderItem{
		ID:        data.ID,
		OrderID:   data.OrderID,
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Price:     data.Price,
		Product:   toProductDomain(data.Product),
	}
}
