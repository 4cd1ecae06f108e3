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

type OrderRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateOrderRepository(db *sqlx.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

type sqlxConn interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *OrderRepositoryImpl) conn() sqlxConn {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *OrderRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	txRepo := &OrderRepositoryImpl{
		db: r.db,
		tx: tx,
	}

	err = fn(ctx, txRepo)

	return err
}

func (r *OrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id int64, err error) {
	timestamp := time.Now().Unix()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	nstmt, err := r.conn().PrepareNamedContext(ctx, "INSERT INTO orders(user_id, payment_method, items_price, tax_price, shipping_price, total_price, shipping_street, shipping_city, shipping_state, shipping_zip_code, shipping_country, is_paid, is_delivered, order_status, created_at, updated_at) VALUES (:user_id, :payment_method, :items_price, :tax_price, :shipping_price, :total_price, :shipping_street, :shipping_city, :shipping_state, :shipping_zip_code, :shipping_country, :is_paid, :is_delivered, :order_status, :created_at, :updated_at) returning id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrder").Msg("")
		return
	}

	return data.ID, nil
}

func (r *OrderRepositoryImpl) AddOrderItems(ctx context.Context, data []domain.OrderItem) (err error) {
	timestamp := time.Now().Unix()
	for idx := range data {
		data[idx].CreatedAt = timestamp
		data[idx].UpdatedAt = timestamp
	}

	_, err = r.conn().NamedExecContext(ctx, "INSERT INTO order_items(order_id, product_id, name, quantity, price, image, created_at, updated_at) VALUES (:order_id, :product_id, :name, :quantity, :price, :image, :created_at, :updated_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrderItems").Msg("")
		return
	}

	return nil
}

func (r *OrderRepositoryImpl) GetOrderByID(ctx context.Context, id int64) (data domain.Order, err error) {
	row := r.conn().QueryRowxContext(ctx, "SELECT o.*, u.name AS user_name, u.email AS user_email FROM orders o JOIN users u ON u.id = o.user_id WHERE o.id = $1 AND o.deleted_at IS NULL", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, errs.ErrOrderNotFound
		}
		log.Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *OrderRepositoryImpl) GetOrderItemsByOrderID(ctx context.Context, orderID int64) (data []domain.OrderItem, err error) {
	err = r.conn().SelectContext(ctx, &data, "SELECT * FROM order_items WHERE order_id = $1 ORDER BY id ASC", orderID)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrderItemsByOrderID").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *OrderRepositoryImpl) GetOrdersByUserID(ctx context.Context, userID int64) (data []domain.Order, err error) {
	err = r.conn().SelectContext(ctx, &data, "SELECT o.*, u.name AS user_name, u.email AS user_email FROM orders o JOIN users u ON u.id = o.user_id WHERE o.user_id = $1 AND o.deleted_at IS NULL ORDER BY o.created_at DESC", userID)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrdersByUserID").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *OrderRepositoryImpl) GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, err error) {
	query := "SELECT o.*, u.name AS user_name, u.email AS user_email FROM orders o JOIN users u ON u.id = o.user_id WHERE o.deleted_at IS NULL ORDER BY o.created_at DESC"

	args := make(map[string]interface{})

	if filter.Limit != 0 && filter.Page != 0 {
		offset := (filter.Page - 1) * filter.Limit
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filter.Limit
		args["offset"] = offset
	}

	nstmt, err := r.conn().PrepareNamedContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, err
	}

	err = nstmt.SelectContext(ctx, &data, args)
	if err != nil {
		log.Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *OrderRepositoryImpl) UpdateOrderToPaid(ctx context.Context, data domain.Order) (err error) {
	data.UpdatedAt = time.Now().Unix()

	_, err = r.conn().NamedExecContext(ctx, "UPDATE orders SET is_paid=true, paid_at=:paid_at, payment_id=:payment_id, payment_status=:payment_status, payment_update_time=:payment_update_time, payment_email=:payment_email, updated_at=:updated_at WHERE id=:id AND deleted_at IS NULL", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrderToPaid").Msg("")
		return
	}

	return nil
}

func (r *OrderRepositoryImpl) UpdateOrderToDelivered(ctx context.Context, data domain.Order) (err error) {
	data.UpdatedAt = time.Now().Unix()

	_, err = r.conn().NamedExecContext(ctx, "UPDATE orders SET is_delivered=true, delivered_at=:delivered_at, order_status=:order_status, updated_at=:updated_at WHERE id=:id AND deleted_at IS NULL", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrderToDelivered").Msg("")
		return
	}

	return nil
}

func (r *OrderRepositoryImpl) UpdateOrderStatus(ctx context.Context, data domain.Order) (err error) {
	data.UpdatedAt = time.Now().Unix()

	_, err = r.conn().NamedExecContext(ctx, "UPDATE orders SET order_status=:order_status, updated_at=:updated_at WHERE id=:id AND deleted_at IS NULL", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrderStatus").Msg("")
		return
	}

	return nil
}

func (r *OrderRepositoryImpl) CountOrders(ctx context.Context) (count int64, err error) {
	err = r.conn().GetContext(ctx, &count, "SELECT COUNT(id) FROM orders WHERE deleted_at IS NULL")
	if err != nil {
		log.Error().Err(err).Str("component", "CountOrders").Msg("")
		return 0, err
	}

	return
}

func (r *OrderRepositoryImpl) SumPaidOrderTotals(ctx context.Context) (total float64, err error) {
	err = r.conn().GetContext(ctx, &total, "SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE is_paid = true AND deleted_at IS NULL")
	if err != nil {
		log.Error().Err(err).Str("component", "SumPaidOrderTotals").Msg("")
		return 0, err
	}

	return
}

func (r *OrderRepositoryImpl) GetUnpaidGatewayOrdersBefore(ctx context.Context, cutoff int64) (data []domain.Order, err error) {
	err = r.conn().SelectContext(ctx, &data, "SELECT o.*, u.name AS user_name, u.email AS user_email FROM orders o JOIN users u ON u.id = o.user_id WHERE o.payment_method = $1 AND o.is_paid = false AND o.created_at < $2 AND o.deleted_at IS NULL ORDER BY o.created_at ASC", domain.PaymentMethodGateway, cutoff)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUnpaidGatewayOrdersBefore").Msg("")
		return nil, err
	}

	return data, nil
}
